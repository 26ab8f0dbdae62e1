package record

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lifehub-service/internal/apperror"
	"lifehub-service/internal/model"
)

// TableService backs one module type with the shared module_records table.
// All builtin modules run on this implementation; the module type fixes
// the row partition. Filters and sorts evaluate in memory over the scoped
// rows, so both backends share identical operator semantics.
type TableService struct {
	db         *gorm.DB
	moduleType string
}

func NewTableService(db *gorm.DB, moduleType string) *TableService {
	return &TableService{db: db, moduleType: moduleType}
}

func (s *TableService) scoped(ctx context.Context, userID uint, databaseID string) *gorm.DB {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND module_type = ? AND database_id = ?", userID, s.moduleType, databaseID)
}

func (s *TableService) List(ctx context.Context, userID uint, databaseID string, opts ListOptions) ([]model.ModuleRecord, error) {
	var records []model.ModuleRecord
	result := s.scoped(ctx, userID, databaseID).Order("created_at ASC").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return apply(records, opts), nil
}

func (s *TableService) Create(ctx context.Context, userID uint, databaseID string, data model.JSONMap) (*model.ModuleRecord, error) {
	rec := &model.ModuleRecord{
		UserID:     userID,
		ModuleType: s.moduleType,
		DatabaseID: databaseID,
		Data:       data,
	}
	if result := s.db.WithContext(ctx).Create(rec); result.Error != nil {
		return nil, result.Error
	}
	return rec, nil
}

// Update merges the given fields into the record's data. Keys not present
// in data are left untouched.
func (s *TableService) Update(ctx context.Context, userID uint, databaseID, recordID string, data model.JSONMap) (*model.ModuleRecord, error) {
	var rec model.ModuleRecord
	result := s.scoped(ctx, userID, databaseID).Where("id = ?", recordID).First(&rec)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("record", recordID)
		}
		return nil, result.Error
	}

	if rec.Data == nil {
		rec.Data = model.JSONMap{}
	}
	for k, v := range data {
		rec.Data[k] = v
	}
	if result := s.db.WithContext(ctx).Save(&rec); result.Error != nil {
		return nil, result.Error
	}
	return &rec, nil
}

func (s *TableService) Delete(ctx context.Context, userID uint, databaseID, recordID string) error {
	result := s.scoped(ctx, userID, databaseID).Where("id = ?", recordID).Delete(&model.ModuleRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFound("record", recordID)
	}
	return nil
}
