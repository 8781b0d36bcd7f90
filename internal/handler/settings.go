package handler

import (
	"encoding/json"
	"net/http"

	"triplogs/internal/domain"
)

// SettingsPayload is the wire form of the settings singleton, for both
// directions.
type SettingsPayload struct {
	Unit               string `json:"unit"`
	Currency           string `json:"currency"`
	DeductionRateCents int64  `json:"deductionRateCents"`
}

// UserInfoPayload is the wire form of the user info singleton, for both
// directions.
type UserInfoPayload struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	CityState string `json:"cityState"`
	Country   string `json:"country"`
	ZipCode   string `json:"zipCode"`
}

// GetSettings handles GET /settings. Defaults are returned until the user
// saves something.
func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.GetSettings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsToPayload(settings))
}

// PutSettings handles PUT /settings.
func (s *Server) PutSettings(w http.ResponseWriter, r *http.Request) {
	var body SettingsPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid JSON body"))
		return
	}
	stored, err := s.settings.PutSettings(r.Context(), domain.Settings{
		Unit:               domain.DistanceUnit(body.Unit),
		Currency:           body.Currency,
		DeductionRateCents: body.DeductionRateCents,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsToPayload(stored))
}

// GetUserInfo handles GET /user-info.
func (s *Server) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.settings.GetUserInfo(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserInfoPayload(info))
}

// PutUserInfo handles PUT /user-info.
func (s *Server) PutUserInfo(w http.ResponseWriter, r *http.Request) {
	var body UserInfoPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid JSON body"))
		return
	}
	stored, err := s.settings.PutUserInfo(r.Context(), domain.UserInfo(body))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserInfoPayload(stored))
}

func settingsToPayload(s domain.Settings) SettingsPayload {
	return SettingsPayload{
		Unit:               string(s.Unit),
		Currency:           s.Currency,
		DeductionRateCents: s.DeductionRateCents,
	}
}
