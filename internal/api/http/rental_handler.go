package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"rentalpro-backend/internal/domain"
	"rentalpro-backend/internal/service"
)

type RentalHandler struct {
	svc service.RentalService
}

func NewRentalHandler(svc service.RentalService) *RentalHandler {
	return &RentalHandler{svc: svc}
}

// List handles GET /api/rentals
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.svc.ListRentals(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if rentals == nil {
		rentals = []domain.Rental{}
	}
	respondJSON(w, http.StatusOK, rentals)
}

// Get handles GET /api/rentals/{id}
func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	rental, err := h.svc.GetRental(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

// Create handles POST /api/rentals
func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rental domain.Rental
	if err := json.NewDecoder(r.Body).Decode(&rental); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.svc.CreateRental(r.Context(), &rental)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

// Update handles PUT /api/rentals/{id}, replacing the header together
// with the full line-item and payment sets.
func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var rental domain.Rental
	if err := json.NewDecoder(r.Body).Decode(&rental); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rental.ID = mux.Vars(r)["id"]
	updated, err := h.svc.UpdateRental(r.Context(), &rental)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/rentals/{id}
func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteRental(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondDeleted(w, "Rental deleted")
}
