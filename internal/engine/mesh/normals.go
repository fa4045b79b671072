package mesh

import "github.com/chewxy/math32"

// SmoothNormals replaces vertex normals with the area-weighted average of
// the face normals around each position. Vertices that share a position
// but differ in UV get the same normal.
func SmoothNormals(m *Mesh) {
	const epsilon float32 = 0.0001

	posKey := func(p [3]float32) [3]int32 {
		return [3]int32{
			int32(math32.Floor(p[0]/epsilon + 0.5)),
			int32(math32.Floor(p[1]/epsilon + 0.5)),
			int32(math32.Floor(p[2]/epsilon + 0.5)),
		}
	}

	sums := make(map[[3]int32][3]float32)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]].Position
		b := m.Vertices[m.Indices[i+1]].Position
		c := m.Vertices[m.Indices[i+2]].Position

		// Unnormalized cross product weights by triangle area
		n := cross(sub(b, a), sub(c, a))
		for _, p := range [][3]float32{a, b, c} {
			k := posKey(p)
			s := sums[k]
			sums[k] = [3]float32{s[0] + n[0], s[1] + n[1], s[2] + n[2]}
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = normalize(sums[posKey(m.Vertices[i].Position)])
	}
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// normalize returns a unit vector, or +Y for degenerate input.
func normalize(v [3]float32) [3]float32 {
	length := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if length < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / length, v[1] / length, v[2] / length}
}
