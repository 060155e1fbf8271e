package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"rentalpro-backend/internal/domain"
	"rentalpro-backend/internal/service"
)

type ItemHandler struct {
	svc service.ItemService
}

func NewItemHandler(svc service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// List handles GET /api/items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListItems(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	respondJSON(w, http.StatusOK, items)
}

// Create handles POST /api/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var it domain.Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.svc.CreateItem(r.Context(), &it)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

// Update handles PUT /api/items/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var it domain.Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	it.ID = mux.Vars(r)["id"]
	updated, err := h.svc.UpdateItem(r.Context(), &it)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/items/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteItem(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondDeleted(w, "Item deleted")
}
