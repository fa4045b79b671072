package mesh

// cubeFace describes one face of an axis-aligned cube: its outward normal
// and two in-plane axes with u x v = normal.
type cubeFace struct {
	normal, u, v [3]float32
}

var cubeFaces = [6]cubeFace{
	{normal: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
	{normal: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
}

// Two counter-clockwise triangles in face UV space.
var quadCorners = [6][2]float32{
	{0, 0}, {1, 0}, {1, 1},
	{1, 1}, {0, 1}, {0, 0},
}

func (f cubeFace) corner(s, t, half float32) [3]float32 {
	var p [3]float32
	for i := range 3 {
		p[i] = (f.normal[i] + (2*s-1)*f.u[i] + (2*t-1)*f.v[i]) * half
	}
	return p
}

// Cube returns a unit cube centered on the origin as 36 non-indexed
// vertices, with per-face normals and each face mapped to the full texture.
func Cube() *Mesh {
	m := &Mesh{
		Vertices:  make([]Vertex, 0, 36),
		Materials: map[string]*Material{},
		Bounds:    emptyBounds(),
	}
	for _, f := range cubeFaces {
		for _, c := range quadCorners {
			v := Vertex{
				Position: f.corner(c[0], c[1], 0.5),
				Normal:   f.normal,
				TexCoord: c,
			}
			updateBounds(&m.Bounds, v.Position)
			m.Vertices = append(m.Vertices, v)
		}
	}
	m.Groups = []Group{{IndexCount: int32(len(m.Vertices))}}
	return m
}

// Skybox returns the positions of a 2x2x2 cube wound to face inward,
// three floats per vertex, 36 vertices.
func Skybox() []float32 {
	out := make([]float32, 0, 36*3)
	for _, f := range cubeFaces {
		for i := len(quadCorners) - 1; i >= 0; i-- {
			p := f.corner(quadCorners[i][0], quadCorners[i][1], 1)
			out = append(out, p[:]...)
		}
	}
	return out
}

// Interleave flattens vertices into position, normal, uv order,
// eight floats per vertex.
func Interleave(vertices []Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*8)
	for _, v := range vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
		out = append(out, v.TexCoord[:]...)
	}
	return out
}
