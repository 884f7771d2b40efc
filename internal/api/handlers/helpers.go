package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/asbbic/membership/internal/dto"
)

type envelope map[string]any

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// successResponse writes the uniform success envelope. Payload keys from
// data are merged next to success/message so callers control the name the
// payload travels under ("member", "members", "stats", ...).
func (h *Handlers) successResponse(w http.ResponseWriter, r *http.Request, status int, message string, data envelope) {
	body := envelope{
		"success": true,
		"message": message,
	}
	for key, value := range data {
		body[key] = value
	}

	if err := h.writeJSON(w, status, body); err != nil {
		h.logError(r, err)
	}
}

// getPageQuery reads the table-widget paging parameters. The caller has
// already established that draw is present.
func (h *Handlers) getPageQuery(r *http.Request) dto.MemberPageQuery {
	q := dto.MemberPageQuery{Length: 10}

	if v, err := strconv.Atoi(r.URL.Query().Get("draw")); err == nil {
		q.Draw = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("start")); err == nil && v >= 0 {
		q.Start = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("length")); err == nil && v > 0 {
		q.Length = v
	}
	q.Search = r.URL.Query().Get("search")

	return q
}
