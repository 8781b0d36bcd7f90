package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"triplogs/internal/domain"
)

// OdometerReadingRequest is the body of POST /odometer-readings.
type OdometerReadingRequest struct {
	VehicleID string              `json:"vehicleId"`
	Date      *openapi_types.Date `json:"date"`
	Odometer  int64               `json:"odometer"`
}

// OdometerReadingResponse is the wire form of an odometer reading.
type OdometerReadingResponse struct {
	ID        string             `json:"id"`
	VehicleID string             `json:"vehicleId"`
	Date      openapi_types.Date `json:"date"`
	Odometer  int64              `json:"odometer"`
	CreatedAt time.Time          `json:"createdAt"`
}

// CreateOdometerReading handles POST /odometer-readings.
func (s *Server) CreateOdometerReading(w http.ResponseWriter, r *http.Request) {
	var body OdometerReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid JSON body"))
		return
	}
	reading := domain.OdometerReading{
		VehicleID: body.VehicleID,
		Odometer:  body.Odometer,
	}
	if body.Date != nil {
		reading.Date = body.Date.Time
	}

	created, err := s.odometer.Create(r.Context(), reading)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("vehicle not found"))
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, readingToResponse(created))
}

// ListOdometerReadings handles GET /odometer-readings.
func (s *Server) ListOdometerReadings(w http.ResponseWriter, r *http.Request) {
	readings, err := s.odometer.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	data := make([]OdometerReadingResponse, len(readings))
	for i, reading := range readings {
		data[i] = readingToResponse(reading)
	}
	writeJSON(w, http.StatusOK, data)
}

// DeleteOdometerReading handles DELETE /odometer-readings/{id}.
func (s *Server) DeleteOdometerReading(w http.ResponseWriter, r *http.Request) {
	if err := s.odometer.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("odometer reading not found"))
			return
		}
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func readingToResponse(r domain.OdometerReading) OdometerReadingResponse {
	return OdometerReadingResponse{
		ID:        r.ID,
		VehicleID: r.VehicleID,
		Date:      openapi_types.Date{Time: r.Date},
		Odometer:  r.Odometer,
		CreatedAt: r.CreatedAt,
	}
}
