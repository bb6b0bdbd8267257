package engine

import (
	"fmt"
	"math"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/hedra/pkg/hemesh"
	"github.com/chazu/hedra/pkg/ops"
	"github.com/chazu/hedra/pkg/triangulate"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms Hedra Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: ear-clipping -> ear_clipping
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing mesh element ids through the environment
// ---------------------------------------------------------------------------

// sexpVertexRef wraps a hemesh.VertexID so it can be passed between builtins.
type sexpVertexRef struct {
	id hemesh.VertexID
}

func (v *sexpVertexRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vertexref %s)", v.id)
}
func (v *sexpVertexRef) Type() *zygo.RegisteredType { return nil }

// sexpEdgeRef wraps a hemesh.EdgeID.
type sexpEdgeRef struct {
	id hemesh.EdgeID
}

func (e *sexpEdgeRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(edgeref %s)", e.id)
}
func (e *sexpEdgeRef) Type() *zygo.RegisteredType { return nil }

// sexpFaceRef wraps a hemesh.FaceID.
type sexpFaceRef struct {
	id hemesh.FaceID
}

func (f *sexpFaceRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(faceref %s)", f.id)
}
func (f *sexpFaceRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value; treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_delaunay) and plain strings
// ("delaunay").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toVertexRef extracts a VertexID from a sexpVertexRef.
func toVertexRef(s zygo.Sexp) (hemesh.VertexID, error) {
	if ref, ok := s.(*sexpVertexRef); ok {
		return ref.id, nil
	}
	return hemesh.UndefinedVertex, fmt.Errorf("expected vertex reference, got %T (%s)", s, s.SexpString(nil))
}

// toFaceRef extracts a FaceID from a sexpFaceRef.
func toFaceRef(s zygo.Sexp) (hemesh.FaceID, error) {
	if ref, ok := s.(*sexpFaceRef); ok {
		return ref.id, nil
	}
	return hemesh.UndefinedFace, fmt.Errorf("expected face reference, got %T (%s)", s, s.SexpString(nil))
}

// toAlgorithm converts a keyword or string to a triangulate.Algorithm.
// Hyphens and underscores are ignored, so :ear-clipping and "earclipping"
// name the same algorithm.
func toAlgorithm(s zygo.Sexp) (triangulate.Algorithm, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return triangulate.Auto, fmt.Errorf("expected algorithm keyword: %w", err)
	}
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	algos := map[string]triangulate.Algorithm{
		"auto":         triangulate.Auto,
		"fan":          triangulate.Fan,
		"earclipping":  triangulate.EarClipping,
		"sweep":        triangulate.Sweep,
		"sweepdynamic": triangulate.SweepDynamic,
		"delaunay":     triangulate.Delaunay,
		"edgeflip":     triangulate.EdgeFlip,
		"minweight":    triangulate.MinWeight,
		"heuristic":    triangulate.Heuristic,
	}
	algo, ok := algos[norm]
	if !ok {
		return triangulate.Auto, fmt.Errorf("unknown algorithm %q", name)
	}
	return algo, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// boundaryEdge returns the face-less half-edge from a to b, or UndefinedEdge.
func boundaryEdge(m *hemesh.Mesh[v3.Vec], a, b hemesh.VertexID) hemesh.EdgeID {
	for e := range m.OutgoingEdges(a) {
		c := m.EdgeAt(e)
		if c.Target().ID() == b && c.OnBoundary() {
			return e
		}
	}
	return hemesh.UndefinedEdge
}

// registerBuiltins installs all Hedra DSL builtins into a zygomys environment.
// The builtins operate on the provided mesh builder, populating the mesh
// during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *hemesh.Builder[v3.Vec]) {

	// -----------------------------------------------------------------------
	// (vertex 0 0 0)
	// -----------------------------------------------------------------------
	env.AddFunction("vertex", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vertex requires exactly 3 coordinates, got %d", len(args))
		}
		var p v3.Vec
		for i, dst := range []*float64{&p.X, &p.Y, &p.Z} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vertex: coordinate %d: %w", i, err)
			}
			*dst = f
		}
		v := b.InsertVertex(p)
		if err := b.Err(); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVertexRef{id: v}, nil
	})

	// -----------------------------------------------------------------------
	// (edge v1 v2)
	// -----------------------------------------------------------------------
	env.AddFunction("edge", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("edge requires exactly 2 vertex references, got %d", len(args))
		}
		src, err := toVertexRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("edge: source: %w", err)
		}
		dst, err := toVertexRef(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("edge: target: %w", err)
		}
		e := b.InsertEdge(src, dst)
		if err := b.Err(); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpEdgeRef{id: e}, nil
	})

	// -----------------------------------------------------------------------
	// (polygon v1 v2 v3 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 3 {
			return zygo.SexpNull, fmt.Errorf("polygon requires at least 3 vertex references, got %d", len(args))
		}
		ids := make([]hemesh.VertexID, len(args))
		for i, a := range args {
			v, err := toVertexRef(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: vertex %d: %w", i, err)
			}
			ids[i] = v
		}
		// Reuse edges the script already created, insert the rest.
		first := hemesh.UndefinedEdge
		for i := range ids {
			src, dst := ids[i], ids[(i+1)%len(ids)]
			e := boundaryEdge(b.Mesh(), src, dst)
			if !e.Defined() {
				e = b.InsertEdge(src, dst)
			}
			if i == 0 {
				first = e
			}
		}
		f := b.CloseFace(first)
		if err := b.Err(); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpFaceRef{id: f}, nil
	})

	// -----------------------------------------------------------------------
	// (ngon 6 1.5)  ; regular hexagon of radius 1.5 in the z=0 plane
	// -----------------------------------------------------------------------
	env.AddFunction("ngon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("ngon requires a vertex count and a radius, got %d arguments", len(args))
		}
		n, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ngon: count: %w", err)
		}
		if n < 3 {
			return zygo.SexpNull, fmt.Errorf("ngon: count must be at least 3, got %d", n)
		}
		r, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ngon: radius: %w", err)
		}
		ring := make([]v3.Vec, n)
		for i := range ring {
			a := 2 * math.Pi * float64(i) / float64(n)
			ring[i] = v3.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)}
		}
		f := ops.InsertPolygon(b, ring...)
		if err := b.Err(); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpFaceRef{id: f}, nil
	})

	// -----------------------------------------------------------------------
	// (extrude face 0 0 10)
	// -----------------------------------------------------------------------
	env.AddFunction("extrude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("extrude requires a face reference and 3 offsets, got %d arguments", len(args))
		}
		f, err := toFaceRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extrude: face: %w", err)
		}
		var d v3.Vec
		for i, dst := range []*float64{&d.X, &d.Y, &d.Z} {
			v, err := toFloat64(args[i+1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("extrude: offset %d: %w", i, err)
			}
			*dst = v
		}
		top := ops.Extrude(b, f, ops.Translate(d))
		if err := b.Err(); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpFaceRef{id: top}, nil
	})

	// -----------------------------------------------------------------------
	// (triangulate face)  or  (triangulate face :algo :delaunay)
	// -----------------------------------------------------------------------
	env.AddFunction("triangulate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("triangulate requires a face reference")
		}
		f, err := toFaceRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("triangulate: face: %w", err)
		}
		algo := triangulate.Auto
		if v, ok := pa.kw["algo"]; ok {
			algo, err = toAlgorithm(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("triangulate: algo: %w", err)
			}
		}
		faces, err := ops.TriangulateFace(b, f, ops.ProjectXY, algo, triangulate.Options{})
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("triangulate: %w", err)
		}
		out := make([]zygo.Sexp, len(faces))
		for i, fid := range faces {
			out[i] = &sexpFaceRef{id: fid}
		}
		return env.NewSexpArray(out), nil
	})
}
