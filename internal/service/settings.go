package service

import (
	"context"
	"fmt"

	"triplogs/internal/domain"
	"triplogs/internal/repo"
)

// SettingsService implements business logic for the settings and user info
// singletons.
type SettingsService struct {
	settings repo.SettingsRepo
	userInfo repo.UserInfoRepo
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(settings repo.SettingsRepo, userInfo repo.UserInfoRepo) *SettingsService {
	return &SettingsService{settings: settings, userInfo: userInfo}
}

// GetSettings returns the current settings, falling back to defaults when
// none were stored yet.
func (s *SettingsService) GetSettings(ctx context.Context) (domain.Settings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("service.SettingsService.GetSettings: %w", err)
	}
	return settings, nil
}

// PutSettings validates and stores the settings singleton.
func (s *SettingsService) PutSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	if !settings.Unit.Valid() {
		return domain.Settings{}, fmt.Errorf("%w: unit must be miles or kilometers", domain.ErrValidation)
	}
	if len(settings.Currency) != 3 {
		return domain.Settings{}, fmt.Errorf("%w: currency must be a 3-letter code", domain.ErrValidation)
	}
	if settings.DeductionRateCents < 0 {
		return domain.Settings{}, fmt.Errorf("%w: deduction rate must not be negative", domain.ErrValidation)
	}
	if err := s.settings.Put(ctx, settings); err != nil {
		return domain.Settings{}, fmt.Errorf("service.SettingsService.PutSettings: %w", err)
	}
	return settings, nil
}

// GetUserInfo returns the stored user info, or a zero value when none was
// stored yet.
func (s *SettingsService) GetUserInfo(ctx context.Context) (domain.UserInfo, error) {
	info, err := s.userInfo.Get(ctx)
	if err != nil {
		return domain.UserInfo{}, fmt.Errorf("service.SettingsService.GetUserInfo: %w", err)
	}
	return info, nil
}

// PutUserInfo stores the user info singleton. All fields are free-form
// text, so there is nothing to validate.
func (s *SettingsService) PutUserInfo(ctx context.Context, info domain.UserInfo) (domain.UserInfo, error) {
	if err := s.userInfo.Put(ctx, info); err != nil {
		return domain.UserInfo{}, fmt.Errorf("service.SettingsService.PutUserInfo: %w", err)
	}
	return info, nil
}
