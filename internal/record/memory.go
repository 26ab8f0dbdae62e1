package record

import (
	"context"
	"sync"
	"time"

	"lifehub-service/internal/apperror"
	"lifehub-service/internal/model"
)

// MemoryService is an in-memory Service used in tests.
type MemoryService struct {
	mu         sync.RWMutex
	moduleType string
	records    []*model.ModuleRecord
}

func NewMemoryService(moduleType string) *MemoryService {
	return &MemoryService{moduleType: moduleType}
}

func (s *MemoryService) owns(r *model.ModuleRecord, userID uint, databaseID string) bool {
	return r.UserID == userID && r.DatabaseID == databaseID
}

func (s *MemoryService) List(ctx context.Context, userID uint, databaseID string, opts ListOptions) ([]model.ModuleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.ModuleRecord
	for _, r := range s.records {
		if s.owns(r, userID, databaseID) {
			out = append(out, *r)
		}
	}
	return apply(out, opts), nil
}

func (s *MemoryService) Create(ctx context.Context, userID uint, databaseID string, data model.JSONMap) (*model.ModuleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if data == nil {
		data = model.JSONMap{}
	}
	now := time.Now().UTC()
	rec := &model.ModuleRecord{
		ID:         model.NewSecureID("rec_"),
		UserID:     userID,
		ModuleType: s.moduleType,
		DatabaseID: databaseID,
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.records = append(s.records, rec)
	copied := *rec
	return &copied, nil
}

func (s *MemoryService) Update(ctx context.Context, userID uint, databaseID, recordID string, data model.JSONMap) (*model.ModuleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == recordID && s.owns(r, userID, databaseID) {
			if r.Data == nil {
				r.Data = model.JSONMap{}
			}
			for k, v := range data {
				r.Data[k] = v
			}
			r.UpdatedAt = time.Now().UTC()
			copied := *r
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("record", recordID)
}

func (s *MemoryService) Delete(ctx context.Context, userID uint, databaseID, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == recordID && s.owns(r, userID, databaseID) {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("record", recordID)
}
