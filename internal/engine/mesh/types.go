// Package mesh provides CPU-side mesh data: the Wavefront OBJ/MTL loader
// for the planet model and the built-in cube and skybox geometry.
package mesh

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Group is a run of indices drawn with one material.
type Group struct {
	Material   string
	StartIndex int32
	IndexCount int32
}

// Material holds the subset of MTL properties the demo uses.
type Material struct {
	Name       string
	Diffuse    [3]float32
	Specular   [3]float32
	Shininess  float32
	DiffuseMap string // resolved relative to the OBJ directory
}

// Mesh holds the complete mesh data ready for GPU upload.
type Mesh struct {
	Vertices  []Vertex
	Indices   []uint32
	Groups    []Group
	Materials map[string]*Material
	Bounds    Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Handle identifies an uploaded mesh on the GPU.
type Handle struct {
	VAO     uint32
	VBO     uint32
	EBO     uint32
	Count   int32
	Indexed bool
}

// DiffuseMaps returns the distinct diffuse map paths in group order.
func (m *Mesh) DiffuseMaps() []string {
	var out []string
	seen := make(map[string]bool)
	for _, g := range m.Groups {
		mat := m.Materials[g.Material]
		if mat == nil || mat.DiffuseMap == "" || seen[mat.DiffuseMap] {
			continue
		}
		seen[mat.DiffuseMap] = true
		out = append(out, mat.DiffuseMap)
	}
	return out
}

func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
