package registry

import (
	"context"
	"sync"
	"time"
)

// Memory is the default in-process registry. Entries live for the
// process lifetime; the file retention sweep never touches them.
type Memory struct {
	mu          sync.RWMutex
	conversions map[string]*Conversion
}

// NewMemory creates an empty in-memory registry.
func NewMemory() *Memory {
	return &Memory{
		conversions: make(map[string]*Conversion),
	}
}

func (m *Memory) Create(_ context.Context, meshID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.conversions[meshID]; ok {
		return ErrDuplicate
	}

	now := time.Now()
	m.conversions[meshID] = &Conversion{
		MeshID:    meshID,
		Status:    StatusProcessing,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return nil
}

func (m *Memory) Get(_ context.Context, meshID string) (*Conversion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conv, ok := m.conversions[meshID]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy so callers cannot mutate registry state.
	snapshot := *conv
	return &snapshot, nil
}

func (m *Memory) Update(_ context.Context, meshID string, upd Update) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.conversions[meshID]
	if !ok {
		return ErrNotFound
	}

	if upd.Status != nil {
		conv.Status = *upd.Status
	}
	if upd.Progress != nil {
		conv.Progress = *upd.Progress
	}
	if upd.Error != nil {
		conv.Error = *upd.Error
	}
	conv.UpdatedAt = time.Now()

	return nil
}
