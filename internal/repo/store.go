package repo

import (
	"context"
	"database/sql"
)

// Repos bundles one repository per collection, all bound to the same
// executor (either the shared *sql.DB or a single transaction).
type Repos struct {
	Trips    TripRepo
	Vehicles VehicleRepo
	Odometer OdometerRepo
	Settings SettingsRepo
	UserInfo UserInfoRepo
}

// NewRepos constructs the full repository bundle over one executor.
func NewRepos(db db) Repos {
	return Repos{
		Trips:    NewTripRepo(db),
		Vehicles: NewVehicleRepo(db),
		Odometer: NewOdometerRepo(db),
		Settings: NewSettingsRepo(db),
		UserInfo: NewUserInfoRepo(db),
	}
}

// Store owns the database connection and hands out repository bundles.
// The embedded Repos operate in auto-commit mode; Atomic runs a function
// against a bundle bound to one transaction, committing only if it returns
// nil. Multi-collection operations (vehicle-delete cascade, restore) go
// through Atomic so they are all-or-nothing.
type Store struct {
	Repos
	conn *sql.DB
}

// NewStore wraps an open database connection.
func NewStore(conn *sql.DB) *Store {
	return &Store{Repos: NewRepos(conn), conn: conn}
}

// Atomic runs fn with a repository bundle bound to a single transaction.
func (s *Store) Atomic(ctx context.Context, fn func(Repos) error) error {
	return WithTx(ctx, s.conn, func(tx *sql.Tx) error {
		return fn(NewRepos(tx))
	})
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
