package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"triplogs/internal/domain"
)

// TripRequest is the body of POST /trips and PUT /trips/{id}.
type TripRequest struct {
	Date          *openapi_types.Date `json:"date"`
	StartTime     string              `json:"startTime"`
	EndTime       string              `json:"endTime"`
	Miles         float64             `json:"miles"`
	GrossCents    int64               `json:"grossEarningsCents"`
	Expenses      ExpensesPayload     `json:"expenses"`
	VehicleID     *string             `json:"vehicleId"`
	OdometerStart *int64              `json:"odometerStart"`
	OdometerEnd   *int64              `json:"odometerEnd"`
}

// ExpensesPayload is the per-category expense block of a trip.
type ExpensesPayload struct {
	GasolineCents int64 `json:"gasolineCents"`
	TollsCents    int64 `json:"tollsCents"`
	FoodCents     int64 `json:"foodCents"`
}

// TripResponse is the wire form of a trip in every response.
type TripResponse struct {
	ID            string             `json:"id"`
	Date          openapi_types.Date `json:"date"`
	StartTime     string             `json:"startTime"`
	EndTime       string             `json:"endTime"`
	Miles         float64            `json:"miles"`
	GrossCents    int64              `json:"grossEarningsCents"`
	Expenses      ExpensesPayload    `json:"expenses"`
	VehicleID     *string            `json:"vehicleId"`
	OdometerStart *int64             `json:"odometerStart,omitempty"`
	OdometerEnd   *int64             `json:"odometerEnd,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := decodeTrip(w, r)
	if !ok {
		return
	}
	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips. With ?year=YYYY it returns only that
// calendar year's trips; either way the order is newest first.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var (
		trips []domain.Trip
		err   error
	)
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, convErr := strconv.Atoi(raw)
		if convErr != nil {
			writeJSON(w, http.StatusBadRequest, requestBody("year must be an integer"))
			return
		}
		trips, err = s.trips.ListByYear(r.Context(), year)
	} else {
		trips, err = s.trips.List(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, data)
}

// TripYears handles GET /trips/years.
func (s *Server) TripYears(w http.ResponseWriter, r *http.Request) {
	years, err := s.trips.Years(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, years)
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := decodeTrip(w, r)
	if !ok {
		return
	}
	trip.ID = chi.URLParam(r, "id")

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
			return
		}
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeTrip parses a trip body, writing the 400 itself on failure.
func decodeTrip(w http.ResponseWriter, r *http.Request) (domain.Trip, bool) {
	var body TripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid JSON body"))
		return domain.Trip{}, false
	}
	if body.Date == nil {
		writeJSON(w, http.StatusBadRequest, requestBody("date is required"))
		return domain.Trip{}, false
	}
	return domain.Trip{
		Date:          body.Date.Time,
		StartTime:     body.StartTime,
		EndTime:       body.EndTime,
		Miles:         body.Miles,
		GrossCents:    body.GrossCents,
		Expenses:      domain.Expenses(body.Expenses),
		VehicleID:     body.VehicleID,
		OdometerStart: body.OdometerStart,
		OdometerEnd:   body.OdometerEnd,
	}, true
}

func tripToResponse(t domain.Trip) TripResponse {
	return TripResponse{
		ID:            t.ID,
		Date:          openapi_types.Date{Time: t.Date},
		StartTime:     t.StartTime,
		EndTime:       t.EndTime,
		Miles:         t.Miles,
		GrossCents:    t.GrossCents,
		Expenses:      ExpensesPayload(t.Expenses),
		VehicleID:     t.VehicleID,
		OdometerStart: t.OdometerStart,
		OdometerEnd:   t.OdometerEnd,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
