package api

import (
	"database/sql"
	"net/http"
	"strings"

	domainerrors "github.com/farmbook/farmbook/internal/errors"
	"github.com/farmbook/farmbook/internal/model"
	"github.com/farmbook/farmbook/internal/store"
	"github.com/farmbook/farmbook/internal/validation"
)

// FieldsHandler handles field endpoints.
type FieldsHandler struct {
	DB        *sql.DB
	Validator *validation.Validator
}

type fieldRequest struct {
	Name       string  `json:"field_name" validate:"notblank,max=200"`
	Location   string  `json:"location" validate:"max=200"`
	Area       float64 `json:"area" validate:"gte=0"`
	PotatoType string  `json:"potato_type" validate:"max=100"`
	Season     string  `json:"season" validate:"max=100"`
	Year       int     `json:"year" validate:"gte=1900,lte=2200"`
}

func (h *FieldsHandler) decode(r *http.Request) (*model.Field, error) {
	var req fieldRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.Validator.Validate(req); err != nil {
		return nil, err
	}
	return &model.Field{
		UserID:     GetClaims(r.Context()).UserID,
		Name:       req.Name,
		Location:   strings.TrimSpace(req.Location),
		Area:       req.Area,
		PotatoType: strings.TrimSpace(req.PotatoType),
		Season:     strings.TrimSpace(req.Season),
		Year:       req.Year,
	}, nil
}

// List handles GET /api/fields.
func (h *FieldsHandler) List(w http.ResponseWriter, r *http.Request) {
	fields, err := store.ListFields(r.Context(), h.DB, GetClaims(r.Context()).UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if fields == nil {
		fields = []model.Field{}
	}
	jsonResponse(w, http.StatusOK, fields)
}

// Create handles POST /api/fields.
func (h *FieldsHandler) Create(w http.ResponseWriter, r *http.Request) {
	f, err := h.decode(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := store.CreateField(r.Context(), h.DB, f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	requestLogger(r.Context()).Info("field created", "field", created.Name)
	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/fields/{id}.
func (h *FieldsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	f, err := store.GetField(r.Context(), h.DB, GetClaims(r.Context()).UserID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if f == nil {
		writeError(w, r, domainerrors.NotFoundf("field %d not found", id))
		return
	}
	jsonResponse(w, http.StatusOK, f)
}

// Update handles PUT /api/fields/{id}. Renaming a field does not rewrite the
// provenance already recorded on lots.
func (h *FieldsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	f, err := h.decode(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	f.ID = id

	ok, err := store.UpdateField(r.Context(), h.DB, f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, domainerrors.NotFoundf("field %d not found", id))
		return
	}

	updated, err := store.GetField(r.Context(), h.DB, f.UserID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/fields/{id}.
func (h *FieldsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	userID := GetClaims(r.Context()).UserID
	f, err := store.GetField(r.Context(), h.DB, userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if f == nil {
		writeError(w, r, domainerrors.NotFoundf("field %d not found", id))
		return
	}

	ok, err := store.DeleteField(r.Context(), h.DB, userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, domainerrors.NotFoundf("field %d not found", id))
		return
	}

	requestLogger(r.Context()).Info("field deleted", "field_id", id)
	w.WriteHeader(http.StatusNoContent)
}
