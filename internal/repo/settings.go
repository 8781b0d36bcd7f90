package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"triplogs/internal/domain"
)

// SettingsRepo persists the settings singleton.
// Get never reports "missing": before the user saves anything it returns
// domain.DefaultSettings, which is the "exists always" lifecycle.
type SettingsRepo interface {
	Get(ctx context.Context) (domain.Settings, error)
	Put(ctx context.Context, s domain.Settings) error
}

type sqliteSettingsRepo struct {
	db db
}

// NewSettingsRepo constructs a SettingsRepo backed by the provided connection.
func NewSettingsRepo(db db) SettingsRepo {
	return &sqliteSettingsRepo{db: db}
}

func (r *sqliteSettingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	const q = `SELECT unit, currency, deduction_rate_cents FROM settings WHERE id = 1`

	var s domain.Settings
	err := r.db.QueryRowContext(ctx, q).Scan(&s.Unit, &s.Currency, &s.DeductionRateCents)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("repo.SettingsRepo.Get: %w", err)
	}
	return s, nil
}

func (r *sqliteSettingsRepo) Put(ctx context.Context, s domain.Settings) error {
	const q = `
		INSERT INTO settings (id, unit, currency, deduction_rate_cents)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET unit = excluded.unit,
		    currency = excluded.currency,
		    deduction_rate_cents = excluded.deduction_rate_cents`

	if _, err := r.db.ExecContext(ctx, q, s.Unit, s.Currency, s.DeductionRateCents); err != nil {
		return fmt.Errorf("repo.SettingsRepo.Put: %w", err)
	}
	return nil
}

// UserInfoRepo persists the user-info singleton. Like settings, Get returns
// the zero value (all fields empty) until the user saves something.
type UserInfoRepo interface {
	Get(ctx context.Context) (domain.UserInfo, error)
	Put(ctx context.Context, info domain.UserInfo) error
}

type sqliteUserInfoRepo struct {
	db db
}

// NewUserInfoRepo constructs a UserInfoRepo backed by the provided connection.
func NewUserInfoRepo(db db) UserInfoRepo {
	return &sqliteUserInfoRepo{db: db}
}

func (r *sqliteUserInfoRepo) Get(ctx context.Context) (domain.UserInfo, error) {
	const q = `SELECT name, address, city_state, country, zip_code FROM user_info WHERE id = 1`

	var info domain.UserInfo
	err := r.db.QueryRowContext(ctx, q).Scan(
		&info.Name, &info.Address, &info.CityState, &info.Country, &info.ZipCode)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserInfo{}, nil
	}
	if err != nil {
		return domain.UserInfo{}, fmt.Errorf("repo.UserInfoRepo.Get: %w", err)
	}
	return info, nil
}

func (r *sqliteUserInfoRepo) Put(ctx context.Context, info domain.UserInfo) error {
	const q = `
		INSERT INTO user_info (id, name, address, city_state, country, zip_code)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET name = excluded.name,
		    address = excluded.address,
		    city_state = excluded.city_state,
		    country = excluded.country,
		    zip_code = excluded.zip_code`

	_, err := r.db.ExecContext(ctx, q,
		info.Name, info.Address, info.CityState, info.Country, info.ZipCode)
	if err != nil {
		return fmt.Errorf("repo.UserInfoRepo.Put: %w", err)
	}
	return nil
}
