package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	svc "github.com/asbbic/membership/internal/services"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidator builds the validator and its English translator.
func NewValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, nil, fmt.Errorf("failed to load en translator")
	}

	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register validator translations: %w", err)
	}

	return validate, trans, nil
}

func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		h.errorResponse(w, r, svc.BadRequest(fmt.Sprintf("invalid request body: %v", err)))
		return false
	}

	return h.validateStruct(w, r, dst)
}

func (h *Handlers) validateStruct(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := h.validate.Struct(dst); err != nil {
		var validationErrors []ValidationError
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				validationErrors = append(validationErrors, ValidationError{
					Field:   fe.Field(),
					Message: fe.Translate(h.trans),
				})
			}
		}

		h.validationErrorResponse(w, r, validationErrors)
		return false
	}

	return true
}
