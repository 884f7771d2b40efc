package handlers

import (
	"net/http"

	"github.com/asbbic/membership/internal/dto"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var input dto.LoginInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	authResponse, err := h.factory.Services.User.Login(r.Context(), w, &input)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Logged in", envelope{
		"auth": authResponse,
	})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.factory.Services.User.ClearJWTCookie(w)
	h.successResponse(w, r, http.StatusOK, "Logged out", nil)
}
