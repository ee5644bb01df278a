package store

import "sync"

// Preferences is a small persistent string store.
type Preferences interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemoryPreferences keeps preferences for the life of the process.
type MemoryPreferences struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryPreferences creates an empty preference store.
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string]string)}
}

func (p *MemoryPreferences) Get(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.values[key]
	return v, ok
}

func (p *MemoryPreferences) Set(key, value string) {
	p.mu.Lock()
	p.values[key] = value
	p.mu.Unlock()
}
