package mesh

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/logger"
)

var (
	ErrEmptyOBJ     = errors.New("OBJ has no faces")
	ErrMalformedOBJ = errors.New("malformed OBJ statement")
	ErrBadFaceIndex = errors.New("OBJ face index out of range")
	ErrMalformedMTL = errors.New("malformed MTL statement")
	ErrNoLoader     = errors.New("no file loader")
)

const defaultGroupName = ""

// Options controls post-processing applied by the loaders.
type Options struct {
	// FlipV stores 1-v so images uploaded top row first map correctly.
	FlipV bool
	// GenSmoothNormals computes normals when the file has none.
	GenSmoothNormals bool
}

// FileLoader reads a file by slash-separated path.
type FileLoader func(name string) ([]byte, error)

// OBJ is a parsed OBJ file before material libraries are resolved.
type OBJ struct {
	Mesh         *Mesh
	MaterialLibs []string
	HasNormals   bool
}

type faceVertex struct {
	v, vt, vn int // 0-based, -1 when absent
}

type objParser struct {
	opts Options

	positions [][3]float32
	texCoords [][2]float32
	normals   [][3]float32

	mesh    *Mesh
	libs    []string
	lookup  map[faceVertex]uint32
	current string

	missingNormals bool
}

// ParseOBJ parses Wavefront OBJ text into an indexed triangle mesh.
// Polygons are fan-triangulated and identical v/vt/vn triples share a vertex.
func ParseOBJ(r io.Reader, opts Options) (*OBJ, error) {
	p := &objParser{
		opts:    opts,
		mesh:    &Mesh{Materials: make(map[string]*Material), Bounds: emptyBounds()},
		lookup:  make(map[faceVertex]uint32),
		current: defaultGroupName,
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		if err := p.statement(fields); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}
	if len(p.mesh.Indices) == 0 {
		return nil, ErrEmptyOBJ
	}

	hasNormals := !p.missingNormals
	if !hasNormals && opts.GenSmoothNormals {
		SmoothNormals(p.mesh)
	}
	return &OBJ{Mesh: p.mesh, MaterialLibs: p.libs, HasNormals: hasNormals}, nil
}

func (p *objParser) statement(fields []string) error {
	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, [3]float32{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(fields[1:], 2)
		if err != nil {
			return err
		}
		p.texCoords = append(p.texCoords, [2]float32{v[0], v[1]})
	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, [3]float32{v[0], v[1], v[2]})
	case "f":
		return p.face(fields[1:])
	case "usemtl":
		if len(fields) < 2 {
			return fmt.Errorf("%w: usemtl without name", ErrMalformedOBJ)
		}
		p.current = strings.Join(fields[1:], " ")
	case "mtllib":
		p.libs = append(p.libs, fields[1:]...)
	default:
		// o, g, s, l and friends do not affect the triangle soup
	}
	return nil
}

func (p *objParser) face(refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("%w: face with %d vertices", ErrMalformedOBJ, len(refs))
	}

	idx := make([]uint32, len(refs))
	for i, ref := range refs {
		fv, err := p.parseRef(ref)
		if err != nil {
			return err
		}
		idx[i] = p.vertex(fv)
	}

	g := p.group()
	for i := 1; i+1 < len(idx); i++ {
		p.mesh.Indices = append(p.mesh.Indices, idx[0], idx[i], idx[i+1])
		g.IndexCount += 3
	}
	return nil
}

// group returns the open group for the current material, starting a new one
// when the material changed since the last face.
func (p *objParser) group() *Group {
	groups := p.mesh.Groups
	if n := len(groups); n > 0 && groups[n-1].Material == p.current {
		return &p.mesh.Groups[n-1]
	}
	p.mesh.Groups = append(p.mesh.Groups, Group{
		Material:   p.current,
		StartIndex: int32(len(p.mesh.Indices)),
	})
	return &p.mesh.Groups[len(p.mesh.Groups)-1]
}

func (p *objParser) parseRef(ref string) (faceVertex, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return faceVertex{}, fmt.Errorf("%w: face vertex %q", ErrMalformedOBJ, ref)
	}

	fv := faceVertex{v: -1, vt: -1, vn: -1}
	var err error
	if fv.v, err = resolveIndex(parts[0], len(p.positions)); err != nil {
		return fv, err
	}
	if fv.v < 0 {
		return fv, fmt.Errorf("%w: face vertex %q has no position", ErrMalformedOBJ, ref)
	}
	if len(parts) > 1 && parts[1] != "" {
		if fv.vt, err = resolveIndex(parts[1], len(p.texCoords)); err != nil {
			return fv, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if fv.vn, err = resolveIndex(parts[2], len(p.normals)); err != nil {
			return fv, err
		}
	}
	if fv.vn < 0 {
		p.missingNormals = true
	}
	return fv, nil
}

// resolveIndex converts a 1-based or negative relative OBJ index.
func resolveIndex(s string, count int) (int, error) {
	if s == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", ErrMalformedOBJ, s)
	}
	if n < 0 {
		n = count + n
	} else {
		n--
	}
	if n < 0 || n >= count {
		return 0, fmt.Errorf("%w: %s of %d", ErrBadFaceIndex, s, count)
	}
	return n, nil
}

func (p *objParser) vertex(fv faceVertex) uint32 {
	if i, ok := p.lookup[fv]; ok {
		return i
	}

	v := Vertex{Position: p.positions[fv.v]}
	if fv.vt >= 0 {
		v.TexCoord = p.texCoords[fv.vt]
		if p.opts.FlipV {
			v.TexCoord[1] = 1 - v.TexCoord[1]
		}
	}
	if fv.vn >= 0 {
		v.Normal = p.normals[fv.vn]
	}
	updateBounds(&p.mesh.Bounds, v.Position)

	i := uint32(len(p.mesh.Vertices))
	p.mesh.Vertices = append(p.mesh.Vertices, v)
	p.lookup[fv] = i
	return i
}

// ParseMTL parses a Wavefront material library.
func ParseMTL(r io.Reader) (map[string]*Material, error) {
	mats := make(map[string]*Material)
	var cur *Material

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(stripComment(sc.Text()))
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: %w: newmtl without name", line, ErrMalformedMTL)
			}
			cur = &Material{Name: strings.Join(fields[1:], " ")}
			mats[cur.Name] = cur
			continue
		}
		if cur == nil {
			continue
		}

		switch fields[0] {
		case "Kd", "Ks":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if fields[0] == "Kd" {
				cur.Diffuse = [3]float32{v[0], v[1], v[2]}
			} else {
				cur.Specular = [3]float32{v[0], v[1], v[2]}
			}
		case "Ns":
			v, err := parseFloats(fields[1:], 1)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			cur.Shininess = v[0]
		case "map_Kd":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: %w: map_Kd without file", line, ErrMalformedMTL)
			}
			// Options such as -bm come before the file name
			cur.DiffuseMap = fields[len(fields)-1]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading MTL: %w", err)
	}
	return mats, nil
}

// LoadOBJ reads an OBJ file and the material libraries it references.
// A missing or broken MTL is logged and leaves the mesh untextured.
func LoadOBJ(name string, load FileLoader, opts Options) (*Mesh, error) {
	if load == nil {
		return nil, ErrNoLoader
	}

	data, err := load(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	obj, err := ParseOBJ(bytes.NewReader(data), opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	dir := path.Dir(name)
	for _, lib := range obj.MaterialLibs {
		libPath := path.Join(dir, lib)
		libData, err := load(libPath)
		if err != nil {
			logger.Warn("material library unavailable", zap.String("path", libPath), zap.Error(err))
			continue
		}
		mats, err := ParseMTL(bytes.NewReader(libData))
		if err != nil {
			logger.Warn("material library unreadable", zap.String("path", libPath), zap.Error(err))
			continue
		}
		for matName, m := range mats {
			if m.DiffuseMap != "" {
				m.DiffuseMap = path.Join(dir, m.DiffuseMap)
			}
			obj.Mesh.Materials[matName] = m
		}
	}

	logger.Debug("loaded OBJ",
		zap.String("path", name),
		zap.Int("vertices", len(obj.Mesh.Vertices)),
		zap.Int("triangles", len(obj.Mesh.Indices)/3),
		zap.Int("materials", len(obj.Mesh.Materials)))
	return obj.Mesh, nil
}

func stripComment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return s
}

// parseFloats reads at least n floats; extras such as a w component are ignored.
func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: want %d numbers, got %d", ErrMalformedOBJ, n, len(fields))
	}
	out := make([]float32, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: number %q", ErrMalformedOBJ, fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}
