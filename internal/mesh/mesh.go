// Package mesh provides the small triangle-mesh toolkit the shape
// synthesizer is built on: box and cylinder primitives, rigid
// transforms, concatenation, and GLB import/export.
package mesh

import "math"

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Vertices [][3]float32
	Faces    [][3]uint32
}

// Translate moves every vertex by (x, y, z).
func (m *Mesh) Translate(x, y, z float32) {
	for i := range m.Vertices {
		m.Vertices[i][0] += x
		m.Vertices[i][1] += y
		m.Vertices[i][2] += z
	}
}

// RotateX rotates the mesh about the X axis by angle radians.
func (m *Mesh) RotateX(angle float64) {
	sin := float32(math.Sin(angle))
	cos := float32(math.Cos(angle))
	for i := range m.Vertices {
		y, z := m.Vertices[i][1], m.Vertices[i][2]
		m.Vertices[i][1] = y*cos - z*sin
		m.Vertices[i][2] = y*sin + z*cos
	}
}

// Scale scales the mesh uniformly about the origin.
func (m *Mesh) Scale(factor float32) {
	for i := range m.Vertices {
		m.Vertices[i][0] *= factor
		m.Vertices[i][1] *= factor
		m.Vertices[i][2] *= factor
	}
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() (min, max [3]float32) {
	if len(m.Vertices) == 0 {
		return min, max
	}

	min = m.Vertices[0]
	max = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for axis := 0; axis < 3; axis++ {
			if v[axis] < min[axis] {
				min[axis] = v[axis]
			}
			if v[axis] > max[axis] {
				max[axis] = v[axis]
			}
		}
	}

	return min, max
}

// BoundingVolume returns the volume of the axis-aligned bounding box.
func (m *Mesh) BoundingVolume() float64 {
	min, max := m.Bounds()
	dx := float64(max[0] - min[0])
	dy := float64(max[1] - min[1])
	dz := float64(max[2] - min[2])
	return dx * dy * dz
}

// Merge concatenates meshes into a single mesh, reindexing faces.
func Merge(meshes ...*Mesh) *Mesh {
	combined := &Mesh{}
	for _, m := range meshes {
		offset := uint32(len(combined.Vertices))
		combined.Vertices = append(combined.Vertices, m.Vertices...)
		for _, f := range m.Faces {
			combined.Faces = append(combined.Faces, [3]uint32{
				f[0] + offset,
				f[1] + offset,
				f[2] + offset,
			})
		}
	}
	return combined
}
