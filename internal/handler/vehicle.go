package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"triplogs/internal/domain"
)

// VehicleRequest is the body of POST /vehicles and PUT /vehicles/{id}.
type VehicleRequest struct {
	Year         *int   `json:"year"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	LicensePlate string `json:"licensePlate"`
	Odometer     *int64 `json:"odometer"`
}

// VehicleResponse is the wire form of a vehicle in every response.
type VehicleResponse struct {
	ID           string    `json:"id"`
	Year         *int      `json:"year"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	LicensePlate string    `json:"licensePlate"`
	Odometer     *int64    `json:"odometer"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateVehicle handles POST /vehicles.
func (s *Server) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := decodeVehicle(w, r)
	if !ok {
		return
	}
	created, err := s.vehicles.Create(r.Context(), vehicle)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicleToResponse(created))
}

// ListVehicles handles GET /vehicles.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.vehicles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	data := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		data[i] = vehicleToResponse(v)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetVehicle handles GET /vehicles/{id}.
func (s *Server) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := s.vehicles.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("vehicle not found"))
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleToResponse(vehicle))
}

// UpdateVehicle handles PUT /vehicles/{id}.
func (s *Server) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := decodeVehicle(w, r)
	if !ok {
		return
	}
	vehicle.ID = chi.URLParam(r, "id")

	updated, err := s.vehicles.Update(r.Context(), vehicle)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("vehicle not found"))
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleToResponse(updated))
}

// DeleteVehicle handles DELETE /vehicles/{id}. Trips and odometer readings
// attributed to the vehicle are removed with it.
func (s *Server) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := s.vehicles.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("vehicle not found"))
			return
		}
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NextOdometer handles GET /vehicles/{id}/next-odometer. The value is null
// when neither the vehicle nor its trip history knows an odometer.
func (s *Server) NextOdometer(w http.ResponseWriter, r *http.Request) {
	next, err := s.trips.NextOdometer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("vehicle not found"))
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*int64{"nextOdometer": next})
}

func decodeVehicle(w http.ResponseWriter, r *http.Request) (domain.Vehicle, bool) {
	var body VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid JSON body"))
		return domain.Vehicle{}, false
	}
	return domain.Vehicle{
		Year:         body.Year,
		Make:         body.Make,
		Model:        body.Model,
		LicensePlate: body.LicensePlate,
		Odometer:     body.Odometer,
	}, true
}

func vehicleToResponse(v domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID,
		Year:         v.Year,
		Make:         v.Make,
		Model:        v.Model,
		LicensePlate: v.LicensePlate,
		Odometer:     v.Odometer,
		Name:         v.DisplayName(),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
