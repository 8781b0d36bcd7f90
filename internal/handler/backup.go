package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ExportBackup handles GET /backup. The response is a JSON document
// download carrying every collection plus the settings and user info
// singletons.
func (s *Server) ExportBackup(w http.ResponseWriter, r *http.Request) {
	payload, filename, err := s.backup.Export(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// RestoreBackup handles POST /restore. The body is a previously exported
// backup document; on success the entire data set is replaced with its
// contents. A malformed body yields 400, a structurally invalid document
// 422, and either way the stored data is left untouched.
func (s *Server) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("could not read request body"))
		return
	}
	if err := s.backup.Import(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

// YearlyReport handles GET /reports/{year}, an XLSX download.
func (s *Server) YearlyReport(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("year must be an integer"))
		return
	}
	payload, filename, err := s.reports.Yearly(r.Context(), year)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
