package api

import (
	"database/sql"
	"net/http"
	"strconv"

	domainerrors "github.com/farmbook/farmbook/internal/errors"
	"github.com/farmbook/farmbook/internal/imaging"
	"github.com/farmbook/farmbook/internal/ledger"
	"github.com/farmbook/farmbook/internal/model"
	"github.com/farmbook/farmbook/internal/store"
)

// LotsHandler handles lot endpoints.
type LotsHandler struct {
	DB     *sql.DB
	Ledger *ledger.Ledger
}

type addPacketsRequest struct {
	Packets model.Packets `json:"packets"`
	Notes   string        `json:"notes"`
}

// List handles GET /api/lots and GET /api/lots?field=<name>.
func (h *LotsHandler) List(w http.ResponseWriter, r *http.Request) {
	owner := GetClaims(r.Context()).UserID

	var lots []model.Lot
	var err error
	if field := r.URL.Query().Get("field"); field != "" {
		lots, err = h.Ledger.ListLotsByField(r.Context(), owner, field)
	} else {
		lots, err = h.Ledger.ListLots(r.Context(), owner)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if lots == nil {
		lots = []model.Lot{}
	}
	jsonResponse(w, http.StatusOK, lots)
}

// Create handles POST /api/lots.
func (h *LotsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in ledger.CreateLotInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	lot, err := h.Ledger.CreateLot(r.Context(), GetClaims(r.Context()).UserID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, lot)
}

// Get handles GET /api/lots/{id}.
func (h *LotsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	lot, err := h.Ledger.GetLot(r.Context(), GetClaims(r.Context()).UserID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, lot)
}

// Update handles PUT /api/lots/{id}.
func (h *LotsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var upd ledger.LotUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, r, err)
		return
	}

	lot, err := h.Ledger.UpdateLot(r.Context(), GetClaims(r.Context()).UserID, id, upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, lot)
}

// Delete handles DELETE /api/lots/{id}.
func (h *LotsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Ledger.DeleteLot(r.Context(), GetClaims(r.Context()).UserID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddPackets handles POST /api/lots/{id}/add-packets.
func (h *LotsHandler) AddPackets(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req addPacketsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	lot, err := h.Ledger.AddPacketsToLot(r.Context(), GetClaims(r.Context()).UserID, id, req.Packets, req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, lot)
}

// UploadPhoto handles PUT /api/lots/{id}/photo with a multipart "photo" file.
func (h *LotsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		writeError(w, r, domainerrors.Validation("file too large or invalid multipart form"))
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		writeError(w, r, domainerrors.Validation("photo file required"))
		return
	}
	defer file.Close()

	photo, err := imaging.PreparePhoto(file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ok, err := store.SetLotPhoto(r.Context(), h.DB, GetClaims(r.Context()).UserID, id, photo.Data, photo.MIME)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, domainerrors.NotFoundf("lot %d not found", id))
		return
	}

	requestLogger(r.Context()).Info("lot photo stored", "lot_id", id, "bytes", len(photo.Data))
	jsonResponse(w, http.StatusOK, map[string]any{"width": photo.Width, "height": photo.Height})
}

// GetPhoto handles GET /api/lots/{id}/photo.
func (h *LotsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	data, mime, err := store.GetLotPhoto(r.Context(), h.DB, GetClaims(r.Context()).UserID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if data == nil {
		writeError(w, r, domainerrors.NotFound("no photo"))
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}
