package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/asbbic/membership/internal/dto"
	svc "github.com/asbbic/membership/internal/services"
	"github.com/asbbic/membership/internal/services/users"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handlers) memberID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.errorResponse(w, r, svc.NotFound("Member not found"))
		return uuid.Nil, false
	}
	return id, true
}

// ListMembers serves both listing modes: the plain full listing, and the
// table-widget page when a draw token is present.
func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("draw") == "" {
		members, err := h.factory.Services.Member.List(r.Context())
		if err != nil {
			h.errorResponse(w, r, err)
			return
		}

		h.successResponse(w, r, http.StatusOK, "Members retrieved", envelope{
			"members": members,
		})
		return
	}

	page, err := h.factory.Services.Member.ListPage(r.Context(), h.getPageQuery(r))
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	// The table widget consumes this shape directly, without the envelope.
	if err := h.writeJSON(w, http.StatusOK, page); err != nil {
		h.logError(r, err)
	}
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	member, err := h.factory.Services.Member.Get(r.Context(), id)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Member retrieved", envelope{
		"member": member,
	})
}

func (h *Handlers) MemberPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	path, err := h.factory.Services.Member.PhotoPath(r.Context(), id)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	http.ServeFile(w, r, path)
}

func (h *Handlers) UpdateMemberStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	var input dto.UpdateStatusInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	var reviewer *uuid.UUID
	if user, authed := users.FromContext(r.Context()); authed {
		reviewer = &user.ID
	}

	member, err := h.factory.Services.Member.UpdateStatus(r.Context(), id, input, reviewer)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Member status updated", envelope{
		"member": member,
	})
}

func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.memberID(w, r)
	if !ok {
		return
	}

	if err := h.factory.Services.Member.Delete(r.Context(), id); err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Member deleted successfully", nil)
}

func (h *Handlers) ExportMembersCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.factory.Services.Member.ExportCSV(r.Context())
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	filename := fmt.Sprintf("members-export-%s.csv", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handlers) ExportMembersXLSX(w http.ResponseWriter, r *http.Request) {
	data, err := h.factory.Services.Member.ExportXLSX(r.Context())
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	filename := fmt.Sprintf("members-export-%s.xlsx", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handlers) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.factory.Services.Member.DashboardStats(r.Context())
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Stats retrieved", envelope{
		"stats": stats,
	})
}

func (h *Handlers) RecentMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.factory.Services.Member.RecentMembers(r.Context())
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "Recent members retrieved", envelope{
		"members": members,
	})
}
