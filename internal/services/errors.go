package services

import "net/http"

type ApiError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (a *ApiError) Error() string {
	return a.Message
}

func BadRequest(message string) *ApiError {
	return &ApiError{Status: http.StatusBadRequest, Message: message}
}

func NotFound(message string) *ApiError {
	return &ApiError{Status: http.StatusNotFound, Message: message}
}

func Unauthorized(message string) *ApiError {
	return &ApiError{Status: http.StatusUnauthorized, Message: message}
}

func Internal(message string) *ApiError {
	return &ApiError{Status: http.StatusInternalServerError, Message: message}
}
