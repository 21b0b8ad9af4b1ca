package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/pass-guard/internal/utils"
	"github.com/MKhiriev/pass-guard/models"
)

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	records, err := h.services.VaultService.Search(r.Context(), models.VaultSearchRequest{
		OwnerID: ownerID,
		Search:  r.URL.Query().Get("search"),
	})
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var record models.VaultRecord
	if err := utils.ReadJSON(r, &record); err != nil {
		writeError(w, r, invalidJSON(err), "")
		return
	}
	record.OwnerID = ownerID

	created, err := h.services.VaultService.Create(r.Context(), record)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	record, err := h.services.VaultService.Get(r.Context(), ownerID, chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var record models.VaultRecord
	if err := utils.ReadJSON(r, &record); err != nil {
		writeError(w, r, invalidJSON(err), "")
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if record.ItemID != "" && record.ItemID != itemID {
		writeError(w, r, ErrItemIDMismatch, "")
		return
	}
	record.ItemID = itemID
	record.OwnerID = ownerID

	updated, err := h.services.VaultService.Update(r.Context(), record)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.services.VaultService.Delete(r.Context(), ownerID, chi.URLParam(r, "itemID")); err != nil {
		writeError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownerFromRequest reads the owner id set by the auth middleware, answering
// 401 itself when it is missing.
func ownerFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	ownerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok || ownerID <= 0 {
		writeError(w, r, ErrNoUserIDInContext, "")
		return 0, false
	}
	return ownerID, true
}
