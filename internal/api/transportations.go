package api

import (
	"database/sql"
	"net/http"

	domainerrors "github.com/farmbook/farmbook/internal/errors"
	"github.com/farmbook/farmbook/internal/ledger"
	"github.com/farmbook/farmbook/internal/model"
	"github.com/farmbook/farmbook/internal/store"
)

// TransportationsHandler handles transportation endpoints. Every mutation
// goes through the ledger so lots stay in step.
type TransportationsHandler struct {
	DB     *sql.DB
	Ledger *ledger.Ledger
}

func respondTransportations(w http.ResponseWriter, r *http.Request, list []model.Transportation, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []model.Transportation{}
	}
	jsonResponse(w, http.StatusOK, list)
}

// List handles GET /api/transportations.
func (h *TransportationsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := store.ListTransportations(r.Context(), h.DB, GetClaims(r.Context()).UserID)
	respondTransportations(w, r, list, err)
}

// ListByField handles GET /api/transportations/field/{id}.
func (h *TransportationsHandler) ListByField(w http.ResponseWriter, r *http.Request) {
	fieldID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	owner := GetClaims(r.Context()).UserID
	field, err := store.GetField(r.Context(), h.DB, owner, fieldID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if field == nil {
		writeError(w, r, domainerrors.NotFoundf("field %d not found", fieldID))
		return
	}

	list, err := store.ListTransportationsByField(r.Context(), h.DB, owner, fieldID)
	respondTransportations(w, r, list, err)
}

// Create handles POST /api/transportations.
func (h *TransportationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in ledger.CreateTransportationInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.Ledger.CreateTransportation(r.Context(), GetClaims(r.Context()).UserID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, t)
}

// Get handles GET /api/transportations/{id}.
func (h *TransportationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	t, err := store.GetTransportation(r.Context(), h.DB, GetClaims(r.Context()).UserID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if t == nil {
		writeError(w, r, domainerrors.NotFoundf("transportation %d not found", id))
		return
	}
	jsonResponse(w, http.StatusOK, t)
}

// Update handles PUT /api/transportations/{id}.
func (h *TransportationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var upd ledger.TransportationUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := h.Ledger.UpdateTransportation(r.Context(), GetClaims(r.Context()).UserID, id, upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, t)
}

// Delete handles DELETE /api/transportations/{id}.
func (h *TransportationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Ledger.DeleteTransportation(r.Context(), GetClaims(r.Context()).UserID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
