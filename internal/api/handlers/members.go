package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/asbbic/membership/internal/dto"
	svc "github.com/asbbic/membership/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxUploadBytes = 5 << 20 // 5MB photo bound

// CreateMember handles the public multipart submission form.
func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	// Leave headroom above the photo bound for the text fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.errorResponse(w, r, svc.BadRequest("Invalid form submission"))
		return
	}

	input := dto.CreateMemberInput{
		FullName:   strings.TrimSpace(r.FormValue("fullName")),
		Email:      strings.TrimSpace(r.FormValue("email")),
		Phone:      strings.TrimSpace(r.FormValue("phone")),
		BirthDate:  strings.TrimSpace(r.FormValue("birthDate")),
		BirthPlace: strings.TrimSpace(r.FormValue("birthPlace")),
		Activity:   strings.TrimSpace(r.FormValue("activity")),
		IDNumber:   strings.TrimSpace(r.FormValue("idNumber")),
	}

	photo, ok := h.readPhoto(w, r)
	if !ok {
		return
	}
	input.Photo = photo

	if !h.validateStruct(w, r, &input) {
		return
	}

	member, err := h.factory.Services.Member.Create(r.Context(), input)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusCreated, "Member created successfully", envelope{
		"member": member,
	})
}

// readPhoto applies the media intake guard: at most one attachment, image
// MIME type, bounded size. A missing attachment is fine.
func (h *Handlers) readPhoto(w http.ResponseWriter, r *http.Request) (*dto.PhotoUpload, bool) {
	file, header, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		h.errorResponse(w, r, svc.BadRequest("Invalid photo upload"))
		return nil, false
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		h.errorResponse(w, r, svc.BadRequest("Photo exceeds the 5MB size limit"))
		return nil, false
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		h.errorResponse(w, r, svc.BadRequest("Only images allowed"))
		return nil, false
	}

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.errorResponse(w, r, svc.Internal("Failed to read photo upload"))
		return nil, false
	}

	return &dto.PhotoUpload{
		Content: content,
		Ext:     strings.ToLower(filepath.Ext(header.Filename)),
	}, true
}

// VerifyMember is the public payload behind a scanned verification code.
func (h *Handlers) VerifyMember(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.errorResponse(w, r, svc.NotFound("Member not found"))
		return
	}

	verified, err := h.factory.Services.Member.Verify(r.Context(), id)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Member verified", envelope{
		"member": verified,
	})
}
