// Package leads persists captured leads in the append-only leads table.
package leads

import (
	"context"
	"fmt"

	"lead-capture/internal/models"

	"gorm.io/gorm"
)

// StorageError wraps a database failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("lead store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Insert appends a lead and returns its id. Rows are never updated.
func (s *Store) Insert(ctx context.Context, name, phone string, catalogCode *string) (uint, error) {
	lead := models.Lead{Name: name, Phone: phone, CatalogCode: catalogCode}
	if err := s.db.WithContext(ctx).Create(&lead).Error; err != nil {
		return 0, &StorageError{Op: "insert", Err: err}
	}
	return lead.ID, nil
}

// ListAll returns every lead in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]models.Lead, error) {
	leads := []models.Lead{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&leads).Error; err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return leads, nil
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}
