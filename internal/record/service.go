// Package record holds the per-module record backends. Each module type
// binds to a Service through the resolver; the document-view layer only
// ever talks to the interface.
package record

import (
	"context"
	"sort"
	"sync"

	"lifehub-service/internal/model"
)

// Filter narrows a record listing to rows whose data field matches.
// Operators mirror the view filter operators.
type Filter struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
}

// Sort orders a record listing by a data field.
type Sort struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// ListOptions carries filtering, ordering and pagination for List calls.
// A zero value lists everything in insertion order.
type ListOptions struct {
	Filters []Filter
	Sorts   []Sort
	Limit   int
	Offset  int
}

// Service is a module's record backend. Implementations scope every call
// to the owning user; a record ID from another user is simply not found.
type Service interface {
	List(ctx context.Context, userID uint, databaseID string, opts ListOptions) ([]model.ModuleRecord, error)
	Create(ctx context.Context, userID uint, databaseID string, data model.JSONMap) (*model.ModuleRecord, error)
	Update(ctx context.Context, userID uint, databaseID, recordID string, data model.JSONMap) (*model.ModuleRecord, error)
	Delete(ctx context.Context, userID uint, databaseID, recordID string) error
}

// Resolver maps service binding names to registered Services.
type Resolver struct {
	mu       sync.RWMutex
	services map[string]Service
}

func NewResolver() *Resolver {
	return &Resolver{services: make(map[string]Service)}
}

// Register binds a service under the given name, replacing any previous
// binding.
func (r *Resolver) Register(name string, svc Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[name] = svc
}

// Lookup returns the service bound under name.
func (r *Resolver) Lookup(name string) (Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.services[name]
	return svc, ok
}

// Names returns the registered binding names, sorted.
func (r *Resolver) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
