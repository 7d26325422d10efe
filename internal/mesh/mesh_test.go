package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox(t *testing.T) {
	b := Box(2, 4, 6)

	assert.Len(t, b.Vertices, 8)
	assert.Len(t, b.Faces, 12)

	min, max := b.Bounds()
	assert.Equal(t, [3]float32{-1, -2, -3}, min)
	assert.Equal(t, [3]float32{1, 2, 3}, max)
}

func TestCylinder(t *testing.T) {
	tests := []struct {
		name      string
		sections  int
		wantVerts int
		wantFaces int
	}{
		{name: "16 sections", sections: 16, wantVerts: 34, wantFaces: 64},
		{name: "12 sections", sections: 12, wantVerts: 26, wantFaces: 48},
		{name: "degenerate clamps to 3", sections: 1, wantVerts: 8, wantFaces: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cylinder(0.5, 2, tt.sections)

			assert.Len(t, c.Vertices, tt.wantVerts)
			assert.Len(t, c.Faces, tt.wantFaces)

			min, max := c.Bounds()
			assert.InDelta(t, -1, float64(min[2]), 1e-6)
			assert.InDelta(t, 1, float64(max[2]), 1e-6)
			assert.InDelta(t, 0.5, float64(max[0]), 1e-6)
		})
	}
}

func TestMesh_Translate(t *testing.T) {
	b := Box(2, 2, 2)
	b.Translate(10, -5, 3)

	min, max := b.Bounds()
	assert.Equal(t, [3]float32{9, -6, 2}, min)
	assert.Equal(t, [3]float32{11, -4, 4}, max)
}

func TestMesh_RotateX(t *testing.T) {
	// A cylinder along Z rotated 90 degrees about X ends up along Y.
	c := Cylinder(0.3, 2, 16)
	c.RotateX(math.Pi / 2)

	min, max := c.Bounds()
	assert.InDelta(t, 2, float64(max[1]-min[1]), 1e-5)
	assert.InDelta(t, 0.6, float64(max[2]-min[2]), 1e-5)
}

func TestMesh_Scale(t *testing.T) {
	b := Box(2, 2, 2)
	b.Scale(3)

	min, max := b.Bounds()
	assert.Equal(t, [3]float32{-3, -3, -3}, min)
	assert.Equal(t, [3]float32{3, 3, 3}, max)
}

func TestMerge(t *testing.T) {
	a := Box(1, 1, 1)
	b := Box(1, 1, 1)
	b.Translate(5, 0, 0)

	combined := Merge(a, b)

	assert.Len(t, combined.Vertices, 16)
	assert.Len(t, combined.Faces, 24)

	// Faces of the second box must reference reindexed vertices.
	for _, f := range combined.Faces[12:] {
		for _, idx := range f {
			assert.GreaterOrEqual(t, idx, uint32(8))
		}
	}

	min, max := combined.Bounds()
	assert.Equal(t, float32(-0.5), min[0])
	assert.Equal(t, float32(5.5), max[0])
}

func TestMesh_BoundingVolume(t *testing.T) {
	b := Box(2, 3, 4)
	assert.InDelta(t, 24, b.BoundingVolume(), 1e-5)

	b.Scale(2)
	assert.InDelta(t, 192, b.BoundingVolume(), 1e-4)
}

func TestMesh_BoundsEmpty(t *testing.T) {
	var m Mesh
	min, max := m.Bounds()
	require.Equal(t, min, max)
	assert.Zero(t, m.BoundingVolume())
}
