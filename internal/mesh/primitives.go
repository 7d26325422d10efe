package mesh

import "math"

// Box builds an axis-aligned box centered at the origin with the given
// extents (full side lengths).
func Box(extentX, extentY, extentZ float32) *Mesh {
	hx, hy, hz := extentX/2, extentY/2, extentZ/2

	return &Mesh{
		Vertices: [][3]float32{
			{-hx, -hy, -hz},
			{hx, -hy, -hz},
			{hx, hy, -hz},
			{-hx, hy, -hz},
			{-hx, -hy, hz},
			{hx, -hy, hz},
			{hx, hy, hz},
			{-hx, hy, hz},
		},
		Faces: [][3]uint32{
			// bottom
			{0, 2, 1}, {0, 3, 2},
			// top
			{4, 5, 6}, {4, 6, 7},
			// front
			{0, 1, 5}, {0, 5, 4},
			// back
			{2, 3, 7}, {2, 7, 6},
			// left
			{0, 4, 7}, {0, 7, 3},
			// right
			{1, 2, 6}, {1, 6, 5},
		},
	}
}

// Cylinder builds a capped cylinder of the given radius and height,
// centered at the origin with its axis along Z, approximated with the
// given number of sections around the circumference.
func Cylinder(radius, height float32, sections int) *Mesh {
	if sections < 3 {
		sections = 3
	}

	half := height / 2
	n := uint32(sections)

	m := &Mesh{
		Vertices: make([][3]float32, 0, 2*sections+2),
		Faces:    make([][3]uint32, 0, 4*sections),
	}

	// Bottom ring, then top ring.
	for _, z := range []float32{-half, half} {
		for i := 0; i < sections; i++ {
			angle := 2 * math.Pi * float64(i) / float64(sections)
			m.Vertices = append(m.Vertices, [3]float32{
				radius * float32(math.Cos(angle)),
				radius * float32(math.Sin(angle)),
				z,
			})
		}
	}

	bottomCenter := uint32(len(m.Vertices))
	topCenter := bottomCenter + 1
	m.Vertices = append(m.Vertices, [3]float32{0, 0, -half}, [3]float32{0, 0, half})

	for i := uint32(0); i < n; i++ {
		j := (i + 1) % n
		bi, bj := i, j
		ti, tj := n+i, n+j

		// Side quad as two triangles.
		m.Faces = append(m.Faces, [3]uint32{bi, bj, tj}, [3]uint32{bi, tj, ti})
		// Caps.
		m.Faces = append(m.Faces, [3]uint32{bottomCenter, bj, bi}, [3]uint32{topCenter, ti, tj})
	}

	return m
}
