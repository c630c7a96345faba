package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/erazemk/bso/internal/model"
	"github.com/erazemk/bso/internal/services"
)

// BlanksHandler handles blank CRUD endpoints.
type BlanksHandler struct {
	Service *services.BlankService
}

// List handles GET /api/blanks. The blank_id, number and date query
// parameters are exclusive; the first one present wins.
func (h *BlanksHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	blanks, err := h.Service.List(r.Context(), q)
	if err != nil {
		serviceError(w, r, err, "failed to list blanks")
		return
	}
	if len(blanks) == 0 && q.Filtered() {
		jsonError(w, http.StatusNotFound, "no blanks match the filter")
		return
	}
	if blanks == nil {
		blanks = []model.Blank{}
	}
	jsonResponse(w, http.StatusOK, blanks)
}

func parseListQuery(r *http.Request) (services.ListQuery, error) {
	var q services.ListQuery
	values := r.URL.Query()

	if v := values.Get("blank_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return q, errors.New("invalid blank_id")
		}
		q.ID = &id
	}
	q.Number = values.Get("number")
	if v := values.Get("date"); v != "" {
		d, err := model.ParseDate(v)
		if err != nil {
			return q, errors.New("invalid date, expected YYYY-MM-DD")
		}
		q.Date = &d
	}
	return q, nil
}

// Create handles POST /api/blanks with a {series, start, end} range.
func (h *BlanksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.BlankRange
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.Service.CreateRange(r.Context(), req)
	if err != nil {
		serviceError(w, r, err, "failed to create blanks")
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]int{"created": n})
}

// Get handles GET /api/blanks/{id}.
func (h *BlanksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid blank id")
		return
	}

	blank, err := h.Service.Get(r.Context(), id)
	if err != nil {
		serviceError(w, r, err, "failed to get blank")
		return
	}
	if blank == nil {
		jsonError(w, http.StatusNotFound, "blank not found")
		return
	}

	jsonResponse(w, http.StatusOK, blank)
}

// Update handles PATCH /api/blanks/{id}. Only keys present in the body are
// changed; an explicit null clears the date.
func (h *BlanksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid blank id")
		return
	}

	var req model.BlankUpdate
	if err := decodeJSON(r, &req); err != nil {
		if errors.Is(err, model.ErrValidation) {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	blank, err := h.Service.UpdateAndGet(r.Context(), id, req)
	if err != nil {
		serviceError(w, r, err, "failed to update blank")
		return
	}
	if blank == nil {
		jsonError(w, http.StatusNotFound, "blank not found")
		return
	}

	jsonResponse(w, http.StatusOK, blank)
}

// Delete handles DELETE /api/blanks/{id}.
func (h *BlanksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid blank id")
		return
	}

	ok, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		serviceError(w, r, err, "failed to delete blank")
		return
	}
	if !ok {
		jsonError(w, http.StatusNotFound, "blank not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
