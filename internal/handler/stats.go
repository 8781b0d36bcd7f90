package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"triplogs/internal/stats"
)

// SummaryResponse is the body of GET /summary.
type SummaryResponse struct {
	TripCount          int     `json:"tripCount"`
	TotalDistance      float64 `json:"totalDistance"`
	GrossCents         int64   `json:"grossEarningsCents"`
	ExpensesCents      int64   `json:"totalExpensesCents"`
	NetCents           int64   `json:"netEarningsCents"`
	DrivingMinutes     int     `json:"drivingMinutes"`
	AvgHourlyRateCents int64   `json:"avgHourlyRateCents"`
	ExpenseRatio       float64 `json:"expenseRatio"`
	DeductionCents     int64   `json:"deductionCents"`
}

// TimelineItemResponse is one entry of GET /timeline. Exactly one of Trip
// and Reading is set, matching Kind.
type TimelineItemResponse struct {
	Kind    string                   `json:"kind"`
	Trip    *TripResponse            `json:"trip,omitempty"`
	Reading *OdometerReadingResponse `json:"odometerReading,omitempty"`
}

// TripWithMetricsResponse is one trip row of the year overview: the trip as
// stored plus its derived figures.
type TripWithMetricsResponse struct {
	TripResponse
	DurationMinutes int   `json:"durationMinutes"`
	HourlyRateCents int64 `json:"hourlyRateCents"`
	ExpensesCents   int64 `json:"totalExpensesCents"`
	DeductionCents  int64 `json:"deductionCents"`
	NetCents        int64 `json:"netEarningsCents"`
}

// YearOverviewResponse is the body of GET /years/{year}/summary.
type YearOverviewResponse struct {
	TripCount      int                       `json:"tripCount"`
	TotalDistance  float64                   `json:"totalDistance"`
	GrossCents     int64                     `json:"grossEarningsCents"`
	ExpensesCents  int64                     `json:"totalExpensesCents"`
	NetCents       int64                     `json:"netEarningsCents"`
	DeductionCents int64                     `json:"deductionCents"`
	Trips          []TripWithMetricsResponse `json:"trips"`
}

// GetSummary handles GET /summary?window=7d|30d|year.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	window := stats.Window(r.URL.Query().Get("window"))
	if window == "" {
		window = stats.WindowLast7Days
	}
	summary, err := s.stats.Summary(r.Context(), window)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{
		TripCount:          summary.TripCount,
		TotalDistance:      summary.TotalDistance,
		GrossCents:         summary.GrossCents,
		ExpensesCents:      summary.ExpensesCents,
		NetCents:           summary.NetCents,
		DrivingMinutes:     summary.DrivingMinutes,
		AvgHourlyRateCents: summary.AvgHourlyRateCents,
		ExpenseRatio:       summary.ExpenseRatio,
		DeductionCents:     summary.DeductionCents,
	})
}

// GetTimeline handles GET /timeline?year=YYYY.
func (s *Server) GetTimeline(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("year must be an integer"))
		return
	}
	items, err := s.stats.Timeline(r.Context(), year)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]TimelineItemResponse, len(items))
	for i, item := range items {
		out := TimelineItemResponse{Kind: string(item.Kind)}
		switch item.Kind {
		case stats.KindTrip:
			trip := tripToResponse(*item.Trip)
			out.Trip = &trip
		case stats.KindOdometer:
			reading := readingToResponse(*item.Reading)
			out.Reading = &reading
		}
		data[i] = out
	}
	writeJSON(w, http.StatusOK, data)
}

// GetYearOverview handles GET /years/{year}/summary.
func (s *Server) GetYearOverview(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("year must be an integer"))
		return
	}
	overview, err := s.stats.YearlyOverview(r.Context(), year)
	if err != nil {
		writeError(w, err)
		return
	}

	trips := make([]TripWithMetricsResponse, len(overview.Trips))
	for i, tm := range overview.Trips {
		trips[i] = TripWithMetricsResponse{
			TripResponse:    tripToResponse(tm.Trip),
			DurationMinutes: tm.Metrics.DurationMinutes,
			HourlyRateCents: tm.Metrics.HourlyRateCents,
			ExpensesCents:   tm.Metrics.ExpensesCents,
			DeductionCents:  tm.Metrics.DeductionCents,
			NetCents:        tm.Metrics.NetCents,
		}
	}
	writeJSON(w, http.StatusOK, YearOverviewResponse{
		TripCount:      overview.TripCount,
		TotalDistance:  overview.TotalDistance,
		GrossCents:     overview.GrossCents,
		ExpensesCents:  overview.ExpensesCents,
		NetCents:       overview.NetCents,
		DeductionCents: overview.DeductionCents,
		Trips:          trips,
	})
}
