package moduleconfig

import (
	"sort"
	"sync"

	"lifehub-service/internal/apperror"
)

// Registry maps module types to their configuration. It is populated during
// startup and read-only afterwards; registration is idempotent per module
// type with last write winning. Reads are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*ModuleConfig
}

// NewRegistry returns an empty registry. Components receive it by injection;
// there is no process-global instance.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*ModuleConfig)}
}

// Register stores or overwrites the entry for config.ModuleType.
func (r *Registry) Register(config *ModuleConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[config.ModuleType] = config
}

// Get returns the stored config for moduleType.
func (r *Registry) Get(moduleType string) (*ModuleConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	config, ok := r.entries[moduleType]
	return config, ok
}

// GetModuleConfig returns the stored config or the authoritative
// configuration error for unknown module types. Every entry point that
// accepts a caller-supplied module-type string resolves through this.
func (r *Registry) GetModuleConfig(moduleType string) (*ModuleConfig, error) {
	config, ok := r.Get(moduleType)
	if !ok {
		return nil, apperror.NewConfiguration(moduleType)
	}
	return config, nil
}

// Has reports whether moduleType is registered.
func (r *Registry) Has(moduleType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[moduleType]
	return ok
}

// GetAll returns every registered config, ordered by module type.
func (r *Registry) GetAll() []*ModuleConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	configs := make([]*ModuleConfig, 0, len(r.entries))
	for _, config := range r.entries {
		configs = append(configs, config)
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].ModuleType < configs[j].ModuleType })
	return configs
}

// ModuleTypes returns the registered module types in sorted order.
func (r *Registry) ModuleTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.entries))
	for moduleType := range r.entries {
		types = append(types, moduleType)
	}
	sort.Strings(types)
	return types
}

// Count returns the number of registered modules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
