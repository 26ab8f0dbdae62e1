package documentview

import (
	"context"
	"sync"

	"lifehub-service/internal/model"
)

type ownerKey struct {
	userID     uint
	moduleType string
	databaseID string
}

// MemoryStore is an in-memory Store used in tests. It clones on every read
// and write so callers never share state with the store, matching how rows
// behave through a real database round trip.
type MemoryStore struct {
	mu      sync.Mutex
	nextID  uint
	entries map[ownerKey]*model.DocumentView
	creates int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[ownerKey]*model.DocumentView)}
}

func (s *MemoryStore) key(dv *model.DocumentView) ownerKey {
	return ownerKey{userID: dv.UserID, moduleType: dv.ModuleType, databaseID: dv.DatabaseID}
}

func (s *MemoryStore) Find(ctx context.Context, userID uint, moduleType, databaseID string) (*model.DocumentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dv, ok := s.entries[ownerKey{userID: userID, moduleType: moduleType, databaseID: databaseID}]
	if !ok {
		return nil, nil
	}
	return dv.Clone(), nil
}

func (s *MemoryStore) Create(ctx context.Context, dv *model.DocumentView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.key(dv)
	if _, ok := s.entries[key]; ok {
		return ErrAlreadyExists
	}
	s.nextID++
	dv.ID = s.nextID
	s.creates++
	s.entries[key] = dv.Clone()
	return nil
}

func (s *MemoryStore) Save(ctx context.Context, dv *model.DocumentView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[s.key(dv)] = dv.Clone()
	return nil
}

// Creates returns how many inserts have happened, for idempotence tests.
func (s *MemoryStore) Creates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates
}
