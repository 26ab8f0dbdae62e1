// Package documentview owns schema and view bookkeeping for every module:
// per-user document views are resolved get-or-create from the module
// registry's defaults, then mutated through the service's view and property
// operations. Record persistence is delegated to the bound record services.
package documentview

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lifehub-service/internal/model"
)

// ErrAlreadyExists reports that a document view for the owner triple is
// already stored. Create returns it when the unique index rejects the
// insert; the caller fetches the winner instead of erroring.
var ErrAlreadyExists = errors.New("document view already exists")

// Store persists document views keyed by (user, module type, database).
type Store interface {
	// Find returns the stored view for the owner triple, or nil when absent.
	Find(ctx context.Context, userID uint, moduleType, databaseID string) (*model.DocumentView, error)
	// Create inserts a new document view. Returns ErrAlreadyExists when the
	// owner triple is already taken.
	Create(ctx context.Context, dv *model.DocumentView) error
	// Save writes back a mutated document view.
	Save(ctx context.Context, dv *model.DocumentView) error
}

// GormStore is the Postgres-backed store. The unique composite index on
// (user_id, module_type, database_id) is what makes concurrent first-access
// safe; the loser of the race sees ErrAlreadyExists.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Find(ctx context.Context, userID uint, moduleType, databaseID string) (*model.DocumentView, error) {
	var dv model.DocumentView
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND module_type = ? AND database_id = ?", userID, moduleType, databaseID).
		First(&dv)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &dv, nil
}

func (s *GormStore) Create(ctx context.Context, dv *model.DocumentView) error {
	if err := s.db.WithContext(ctx).Create(dv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *GormStore) Save(ctx context.Context, dv *model.DocumentView) error {
	return s.db.WithContext(ctx).Save(dv).Error
}
