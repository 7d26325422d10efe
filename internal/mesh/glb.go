package mesh

import (
	"fmt"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// SaveGLB exports the mesh as a binary glTF scene with a single node
// and a single triangulated primitive. The write is atomic: the
// artifact either exists complete at path or not at all.
func SaveGLB(m *Mesh, path string) error {
	if len(m.Vertices) == 0 || len(m.Faces) == 0 {
		return fmt.Errorf("refusing to export empty mesh to %s", path)
	}

	indices := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		indices = append(indices, f[0], f[1], f[2])
	}

	doc := gltf.NewDocument()
	doc.Meshes = []*gltf.Mesh{{
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, m.Vertices),
			},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	tmp := path + ".tmp"
	if err := gltf.SaveBinary(doc, tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write glb file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize glb file: %w", err)
	}

	return nil
}

// LoadGLB reads a GLB artifact written by SaveGLB back into a Mesh.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open glb file: %w", err)
	}

	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return nil, fmt.Errorf("glb file %s contains no mesh primitives", path)
	}

	prim := doc.Meshes[0].Primitives[0]

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("glb file %s has no position attribute", path)
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read glb positions: %w", err)
	}

	if prim.Indices == nil {
		return nil, fmt.Errorf("glb file %s has no indices", path)
	}

	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read glb indices: %w", err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("glb file %s is not triangulated", path)
	}

	m := &Mesh{
		Vertices: positions,
		Faces:    make([][3]uint32, 0, len(indices)/3),
	}
	for i := 0; i < len(indices); i += 3 {
		m.Faces = append(m.Faces, [3]uint32{indices[i], indices[i+1], indices[i+2]})
	}

	return m, nil
}
