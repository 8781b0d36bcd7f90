package service

import (
	"context"
	"fmt"
	"time"

	"triplogs/internal/backup"
	"triplogs/internal/repo"
)

// BackupService exports and restores the entire data set as a single JSON
// document.
type BackupService struct {
	store repo.Repos
	tx    Atomic
	now   func() time.Time
}

// NewBackupService constructs a BackupService. Reads use the plain repo
// bundle; restore runs through the transactional store.
func NewBackupService(store repo.Repos, tx Atomic) *BackupService {
	return &BackupService{store: store, tx: tx, now: time.Now}
}

// Export serializes everything into a backup document and returns the
// payload along with a dated download filename.
func (s *BackupService) Export(ctx context.Context) ([]byte, string, error) {
	trips, err := s.store.Trips.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("service.BackupService.Export: %w", err)
	}
	vehicles, err := s.store.Vehicles.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("service.BackupService.Export: %w", err)
	}
	readings, err := s.store.Odometer.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("service.BackupService.Export: %w", err)
	}
	settings, err := s.store.Settings.Get(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("service.BackupService.Export: %w", err)
	}
	info, err := s.store.UserInfo.Get(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("service.BackupService.Export: %w", err)
	}

	doc := backup.New(info, vehicles, settings, trips, readings)
	payload, err := doc.Marshal()
	if err != nil {
		return nil, "", fmt.Errorf("service.BackupService.Export: %w", err)
	}
	return payload, backup.Filename(s.now()), nil
}

// Import decodes a backup payload and replaces the entire data set with its
// contents. The swap is transactional: a failure part-way through leaves
// the previous data untouched.
func (s *BackupService) Import(ctx context.Context, payload []byte) error {
	doc, err := backup.Decode(payload)
	if err != nil {
		return err
	}
	info, vehicles, settings, trips, readings := doc.Collections()

	err = s.tx.Atomic(ctx, func(r repo.Repos) error {
		if err := r.Trips.ReplaceAll(ctx, trips); err != nil {
			return err
		}
		if err := r.Vehicles.ReplaceAll(ctx, vehicles); err != nil {
			return err
		}
		if err := r.Odometer.ReplaceAll(ctx, readings); err != nil {
			return err
		}
		if err := r.Settings.Put(ctx, settings); err != nil {
			return err
		}
		return r.UserInfo.Put(ctx, info)
	})
	if err != nil {
		return fmt.Errorf("service.BackupService.Import: %w", err)
	}
	return nil
}
