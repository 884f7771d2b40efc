package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/asbbic/membership/pkg/logger"
	"github.com/asbbic/membership/pkg/token"
)

type Middleware struct {
	TokenSvc *token.Jwt
	Logger   *logger.Logger
}

func New(tokenSvc *token.Jwt, log *logger.Logger) *Middleware {
	return &Middleware{TokenSvc: tokenSvc, Logger: log}
}

func (m *Middleware) apiError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
