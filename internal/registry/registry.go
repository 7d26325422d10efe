// Package registry tracks the lifecycle state of sketch-to-mesh
// conversions. It is the single source of truth for status queries:
// conversions are created at submission time and mutated only by the
// orchestration task that owns them.
package registry

import (
	"context"
	"errors"
	"time"
)

// Conversion status values. Transitions are one-way:
// processing -> completed or processing -> failed.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

var (
	ErrNotFound  = errors.New("conversion not found")
	ErrDuplicate = errors.New("conversion already exists")
)

// Conversion is one tracked sketch-to-mesh job.
type Conversion struct {
	MeshID    string    `db:"mesh_id"`
	Status    string    `db:"status"`
	Progress  int       `db:"progress"`
	Error     string    `db:"error_message"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Update carries the fields to merge into an existing conversion.
// Nil fields are left untouched.
type Update struct {
	Status   *string
	Progress *int
	Error    *string
}

// Registry is the conversion store. Implementations must be safe for
// concurrent use: each submission handler creates an entry and each
// orchestration goroutine updates its own entry while status polls read.
type Registry interface {
	// Create inserts a fresh conversion with status processing and
	// progress 0. Returns ErrDuplicate if the id is already present.
	Create(ctx context.Context, meshID string) error

	// Get returns a snapshot of the conversion or ErrNotFound.
	Get(ctx context.Context, meshID string) (*Conversion, error)

	// Update merges the given fields into the conversion or returns
	// ErrNotFound.
	Update(ctx context.Context, meshID string, upd Update) error
}

// Helpers for building Update values at call sites.

func String(s string) *string { return &s }

func Int(i int) *int { return &i }
