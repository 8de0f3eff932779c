package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/location"
	"github.com/pontocerto/pontocerto-backend-go/internal/handler/http/response"
)

type LocationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type LocationHandlerImpl struct {
	locationService location.LocationService
}

func NewLocationHandler(locationService location.LocationService) LocationHandler {
	return &LocationHandlerImpl{locationService: locationService}
}

// Create implements LocationHandler.
func (h *LocationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq location.CreateLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Location create decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	locationResponse, err := h.locationService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Location create service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Location created successfully", locationResponse)
}

// Get implements LocationHandler.
func (h *LocationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	locationResponse, err := h.locationService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, locationResponse)
}

// List implements LocationHandler.
func (h *LocationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locationService.List(r.Context())
	if err != nil {
		slog.Error("Location list service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, locations)
}

// ListMine implements LocationHandler.
func (h *LocationHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locationService.ListMine(r.Context())
	if err != nil {
		slog.Error("Location list mine service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, locations)
}

// Update implements LocationHandler.
func (h *LocationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq location.UpdateLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Location update decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	locationResponse, err := h.locationService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Location update service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Location updated successfully", locationResponse)
}

// Delete implements LocationHandler.
func (h *LocationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.locationService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Location deleted successfully", nil)
}
