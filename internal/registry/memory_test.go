package registry

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Create(t *testing.T) {
	ctx := context.Background()
	reg := NewMemory()

	require.NoError(t, reg.Create(ctx, "mesh-1"))

	conv, err := reg.Get(ctx, "mesh-1")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, conv.Status)
	assert.Equal(t, 0, conv.Progress)
	assert.Empty(t, conv.Error)
	assert.False(t, conv.CreatedAt.IsZero())
}

func TestMemory_Create_Duplicate(t *testing.T) {
	ctx := context.Background()
	reg := NewMemory()

	require.NoError(t, reg.Create(ctx, "mesh-1"))

	err := reg.Create(ctx, "mesh-1")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMemory_Get_NotFound(t *testing.T) {
	reg := NewMemory()

	_, err := reg.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Update(t *testing.T) {
	ctx := context.Background()
	reg := NewMemory()
	require.NoError(t, reg.Create(ctx, "mesh-1"))

	tests := []struct {
		name         string
		upd          Update
		wantStatus   string
		wantProgress int
		wantError    string
	}{
		{
			name:         "progress only",
			upd:          Update{Progress: Int(30)},
			wantStatus:   StatusProcessing,
			wantProgress: 30,
		},
		{
			name:         "status and progress",
			upd:          Update{Status: String(StatusCompleted), Progress: Int(100)},
			wantStatus:   StatusCompleted,
			wantProgress: 100,
		},
		{
			name:         "error message",
			upd:          Update{Status: String(StatusFailed), Error: String("decode failed")},
			wantStatus:   StatusFailed,
			wantProgress: 100,
			wantError:    "decode failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, reg.Update(ctx, "mesh-1", tt.upd))

			conv, err := reg.Get(ctx, "mesh-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, conv.Status)
			assert.Equal(t, tt.wantProgress, conv.Progress)
			assert.Equal(t, tt.wantError, conv.Error)
		})
	}
}

func TestMemory_Update_NotFound(t *testing.T) {
	reg := NewMemory()

	err := reg.Update(context.Background(), "missing", Update{Progress: Int(10)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_GetReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	reg := NewMemory()
	require.NoError(t, reg.Create(ctx, "mesh-1"))

	conv, err := reg.Get(ctx, "mesh-1")
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the registry.
	conv.Status = StatusFailed
	conv.Progress = 99

	fresh, err := reg.Get(ctx, "mesh-1")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, fresh.Status)
	assert.Equal(t, 0, fresh.Progress)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	reg := NewMemory()

	const conversions = 50

	var wg sync.WaitGroup
	for i := 0; i < conversions; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("mesh-%d", n)
			require.NoError(t, reg.Create(ctx, id))
			require.NoError(t, reg.Update(ctx, id, Update{Progress: Int(10)}))
			require.NoError(t, reg.Update(ctx, id, Update{
				Status:   String(StatusCompleted),
				Progress: Int(100),
			}))
		}(i)
	}
	wg.Wait()

	for i := 0; i < conversions; i++ {
		conv, err := reg.Get(ctx, fmt.Sprintf("mesh-%d", i))
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, conv.Status)
		assert.Equal(t, 100, conv.Progress)
	}
}
