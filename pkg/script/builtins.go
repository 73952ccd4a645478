package script

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
	"github.com/stylus-cad/stylus/pkg/solid"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms Stylus Lisp source code before passing it
// to zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: equal-length -> equal_length
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
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpEntityRef wraps a sketch.EntityID so entities can be passed
// between builtins.
type sexpEntityRef struct {
	id   sketch.EntityID
	kind sketch.EntityKind
}

func (r *sexpEntityRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(entity %s %s)", r.kind, r.id)
}
func (r *sexpEntityRef) Type() *zygo.RegisteredType { return nil }

// sexpConstraintRef wraps a sketch.ConstraintID.
type sexpConstraintRef struct {
	id sketch.ConstraintID
}

func (r *sexpConstraintRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(constraint %s)", r.id)
}
func (r *sexpConstraintRef) Type() *zygo.RegisteredType { return nil }

// sexpFeatureRef wraps a feature operation id.
type sexpFeatureRef struct {
	id string
}

func (r *sexpFeatureRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(feature %s)", r.id)
}
func (r *sexpFeatureRef) Type() *zygo.RegisteredType { return nil }

// sexpVec2 wraps a geom.Vec2.
type sexpVec2 struct {
	vec geom.Vec2
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %.1f %.1f)", v.vec.X, v.vec.Y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

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
				// Keyword at end with no value: treat as flag with nil.
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

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_symmetric) and plain strings.
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

// toEntityRef extracts an EntityID from a sexpEntityRef.
func toEntityRef(s zygo.Sexp) (sketch.EntityID, error) {
	if ref, ok := s.(*sexpEntityRef); ok {
		return ref.id, nil
	}
	return "", fmt.Errorf("expected entity reference, got %T (%s)", s, s.SexpString(nil))
}

// toVec2 extracts a Vec2 from a sexpVec2.
func toVec2(s zygo.Sexp) (geom.Vec2, error) {
	if v, ok := s.(*sexpVec2); ok {
		return v.vec, nil
	}
	return geom.Vec2{}, fmt.Errorf("expected vec2, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toExtrudeMode converts a keyword to a solid.ExtrudeMode.
func toExtrudeMode(s zygo.Sexp) (solid.ExtrudeMode, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected mode keyword (:single, :symmetric, :two-sided): %w", err)
	}
	switch name {
	case "single":
		return solid.ModeSingle, nil
	case "symmetric":
		return solid.ModeSymmetric, nil
	case "two-sided", "two_sided":
		return solid.ModeTwoSided, nil
	}
	return 0, fmt.Errorf("invalid mode %q, expected single, symmetric, or two-sided", name)
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toProfile extracts a list of entity ids from an entity ref or a list
// of entity refs.
func toProfile(s zygo.Sexp) ([]sketch.EntityID, error) {
	if ref, ok := s.(*sexpEntityRef); ok {
		return []sketch.EntityID{ref.id}, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	ids := make([]sketch.EntityID, 0, len(items))
	for _, item := range items {
		id, err := toEntityRef(item)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// constraintResult converts the outcome of a Document constraint call,
// which returns nil when a referenced entity does not exist.
func constraintResult(c *sketch.Constraint, form string) (zygo.Sexp, error) {
	if c == nil {
		return zygo.SexpNull, fmt.Errorf("%s: referenced entity does not exist", form)
	}
	return &sexpConstraintRef{id: c.ID}, nil
}

// registerBuiltins installs the sketch DSL builtins into a zygomys
// environment. Entity builtins populate the document; feature builtins
// append to the history.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens become recognizable string
// literals.
func registerBuiltins(env *zygo.Zlisp, doc *sketch.Document, history *solid.History) {

	// -----------------------------------------------------------------------
	// (vec2 10 20)
	// -----------------------------------------------------------------------
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec2 requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: y: %w", err)
		}
		return &sexpVec2{vec: geom.Vec2{X: x, Y: y}}, nil
	})

	// -----------------------------------------------------------------------
	// (point 10 20)
	// -----------------------------------------------------------------------
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("point requires x and y, got %d arguments", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: y: %w", err)
		}
		e := doc.AddPoint(geom.Vec2{X: x, Y: y})
		return &sexpEntityRef{id: e.ID, kind: e.Kind}, nil
	})

	// -----------------------------------------------------------------------
	// (line 0 0 100 0)
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("line requires x1 y1 x2 y2, got %d arguments", len(args))
		}
		vals := make([]float64, 4)
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("line: argument %d: %w", i+1, err)
			}
			vals[i] = f
		}
		e := doc.AddLine(geom.Vec2{X: vals[0], Y: vals[1]}, geom.Vec2{X: vals[2], Y: vals[3]})
		return &sexpEntityRef{id: e.ID, kind: e.Kind}, nil
	})

	// -----------------------------------------------------------------------
	// (circle :center (vec2 50 50) :radius 20)
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		center := geom.Vec2{}
		radius := 0.0

		if v, ok := pa.kw["center"]; ok {
			c, err := toVec2(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: center: %w", err)
			}
			center = c
		}
		if v, ok := pa.kw["radius"]; ok {
			r, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: radius: %w", err)
			}
			radius = r
		}
		if radius <= 0 {
			return zygo.SexpNull, fmt.Errorf("circle: radius must be positive, got %g", radius)
		}
		e := doc.AddCircle(center, radius)
		return &sexpEntityRef{id: e.ID, kind: e.Kind}, nil
	})

	// -----------------------------------------------------------------------
	// (rect 0 0 100 60)
	// -----------------------------------------------------------------------
	env.AddFunction("rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("rect requires x1 y1 x2 y2, got %d arguments", len(args))
		}
		vals := make([]float64, 4)
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rect: argument %d: %w", i+1, err)
			}
			vals[i] = f
		}
		e := doc.AddRectangle(geom.Vec2{X: vals[0], Y: vals[1]}, geom.Vec2{X: vals[2], Y: vals[3]})
		return &sexpEntityRef{id: e.ID, kind: e.Kind}, nil
	})

	// -----------------------------------------------------------------------
	// (arc :center (vec2 0 0) :radius 10 :start 0 :sweep 1.57)
	// Angles are in radians; negative sweep runs clockwise.
	// -----------------------------------------------------------------------
	env.AddFunction("arc", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		center := geom.Vec2{}
		radius, start, sweep := 0.0, 0.0, 0.0

		if v, ok := pa.kw["center"]; ok {
			c, err := toVec2(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arc: center: %w", err)
			}
			center = c
		}
		if v, ok := pa.kw["radius"]; ok {
			r, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arc: radius: %w", err)
			}
			radius = r
		}
		if v, ok := pa.kw["start"]; ok {
			s, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arc: start: %w", err)
			}
			start = s
		}
		if v, ok := pa.kw["sweep"]; ok {
			s, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arc: sweep: %w", err)
			}
			sweep = s
		}
		if radius <= 0 {
			return zygo.SexpNull, fmt.Errorf("arc: radius must be positive, got %g", radius)
		}
		e := doc.AddArc(center, radius, start, sweep)
		return &sexpEntityRef{id: e.ID, kind: e.Kind}, nil
	})

	// -----------------------------------------------------------------------
	// Constraints. Single-entity forms take one ref; pair forms take two.
	// (horizontal l1)            (vertical l1)
	// (length l1 100)            (distance a b 40)
	// (angle l1 0.785)           (angle-between l1 l2 1.57)
	// (radius c1 20)             (coincident a 1 b 0)
	// (parallel l1 l2)           (perpendicular l1 l2)
	// (equal-length l1 l2)
	// -----------------------------------------------------------------------
	env.AddFunction("horizontal", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("horizontal requires a line reference")
		}
		id, err := toEntityRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("horizontal: %w", err)
		}
		return constraintResult(doc.AddHorizontalConstraint(id), "horizontal")
	})

	env.AddFunction("vertical", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("vertical requires a line reference")
		}
		id, err := toEntityRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vertical: %w", err)
		}
		return constraintResult(doc.AddVerticalConstraint(id), "vertical")
	})

	env.AddFunction("length", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("length requires a line reference and a value")
		}
		id, err := toEntityRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("length: %w", err)
		}
		val, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("length: value: %w", err)
		}
		return constraintResult(doc.AddLengthConstraint(id, val), "length")
	})

	env.AddFunction("distance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("distance requires two references and a value")
		}
		a, err := toEntityRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distance: first: %w", err)
		}
		b, err := toEntityRef(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distance: second: %w", err)
		}
		val, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distance: value: %w", err)
		}
		return constraintResult(doc.AddDistanceConstraint(a, b, val), "distance")
	})

	env.AddFunction("angle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("angle requires a line reference and a value in radians")
		}
		id, err := toEntityRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("angle: %w", err)
		}
		val, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("angle: value: %w", err)
		}
		return constraintResult(doc.AddAngleConstraint(id, val), "angle")
	})

	env.AddFunction("angle_between", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("angle-between requires two line references and a value in radians")
		}
		a, err := toEntityRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("angle-between: first: %w", err)
		}
		b, err := toEntityRef(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("angle-between: second: %w", err)
		}
		val, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("angle-between: value: %w", err)
		}
		return constraintResult(doc.AddAngleBetweenConstraint(a, b, val), "angle-between")
	})

	env.AddFunction("radius", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("radius requires a circle or arc reference and a value")
		}
		id, err := toEntityRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("radius: %w", err)
		}
		val, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("radius: value: %w", err)
		}
		return constraintResult(doc.AddRadiusConstraint(id, val), "radius")
	})

	env.AddFunction("coincident", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("coincident requires ref pointIndex ref pointIndex")
		}
		a, err := toEntityRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("coincident: first: %w", err)
		}
		pa, err := toInt(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("coincident: first point index: %w", err)
		}
		b, err := toEntityRef(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("coincident: second: %w", err)
		}
		pb, err := toInt(args[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("coincident: second point index: %w", err)
		}
		return constraintResult(doc.AddCoincidentConstraint(a, pa, b, pb), "coincident")
	})

	env.AddFunction("parallel", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("parallel requires two line references")
		}
		a, err := toEntityRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("parallel: first: %w", err)
		}
		b, err := toEntityRef(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("parallel: second: %w", err)
		}
		return constraintResult(doc.AddParallelConstraint(a, b), "parallel")
	})

	env.AddFunction("perpendicular", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("perpendicular requires two line references")
		}
		a, err := toEntityRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("perpendicular: first: %w", err)
		}
		b, err := toEntityRef(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("perpendicular: second: %w", err)
		}
		return constraintResult(doc.AddPerpendicularConstraint(a, b), "perpendicular")
	})

	env.AddFunction("equal_length", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("equal-length requires two references")
		}
		a, err := toEntityRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("equal-length: first: %w", err)
		}
		b, err := toEntityRef(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("equal-length: second: %w", err)
		}
		return constraintResult(doc.AddEqualConstraint(a, b), "equal-length")
	})

	// -----------------------------------------------------------------------
	// (extrude :profile r1 :distance 10 :mode :symmetric :second 5)
	// -----------------------------------------------------------------------
	env.AddFunction("extrude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		op := solid.Operation{Kind: solid.OpExtrude}

		if v, ok := pa.kw["profile"]; ok {
			ids, err := toProfile(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("extrude: profile: %w", err)
			}
			op.Profile = ids
		}
		if v, ok := pa.kw["distance"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("extrude: distance: %w", err)
			}
			op.Extrude.Distance = f
		}
		if v, ok := pa.kw["mode"]; ok {
			m, err := toExtrudeMode(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("extrude: mode: %w", err)
			}
			op.Extrude.Mode = m
		}
		if v, ok := pa.kw["second"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("extrude: second: %w", err)
			}
			op.Extrude.SecondDistance = f
		}

		stored := history.Add(op)
		return &sexpFeatureRef{id: stored.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (revolve :profile r1 :angle 6.28)
	// -----------------------------------------------------------------------
	env.AddFunction("revolve", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		op := solid.Operation{Kind: solid.OpRevolve}

		if v, ok := pa.kw["profile"]; ok {
			ids, err := toProfile(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("revolve: profile: %w", err)
			}
			op.Profile = ids
		}
		if v, ok := pa.kw["angle"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("revolve: angle: %w", err)
			}
			op.Revolve.Angle = f
		}

		stored := history.Add(op)
		return &sexpFeatureRef{id: stored.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (fillet :profile r1 :distance 10 :radius 2)
	// -----------------------------------------------------------------------
	env.AddFunction("fillet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		op := solid.Operation{Kind: solid.OpFillet}

		if v, ok := pa.kw["profile"]; ok {
			ids, err := toProfile(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("fillet: profile: %w", err)
			}
			op.Profile = ids
		}
		if v, ok := pa.kw["distance"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("fillet: distance: %w", err)
			}
			op.Extrude.Distance = f
		}
		if v, ok := pa.kw["radius"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("fillet: radius: %w", err)
			}
			op.Radius = f
		}

		stored := history.Add(op)
		return &sexpFeatureRef{id: stored.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (chamfer :profile r1 :distance 10 :setback 2)
	// -----------------------------------------------------------------------
	env.AddFunction("chamfer", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		op := solid.Operation{Kind: solid.OpChamfer}

		if v, ok := pa.kw["profile"]; ok {
			ids, err := toProfile(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("chamfer: profile: %w", err)
			}
			op.Profile = ids
		}
		if v, ok := pa.kw["distance"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("chamfer: distance: %w", err)
			}
			op.Extrude.Distance = f
		}
		if v, ok := pa.kw["setback"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("chamfer: setback: %w", err)
			}
			op.Distance = f
		}

		stored := history.Add(op)
		return &sexpFeatureRef{id: stored.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (sketch-name "bracket")
	// -----------------------------------------------------------------------
	env.AddFunction("sketch_name", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("sketch-name requires a string")
		}
		n, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sketch-name: %w", err)
		}
		doc.Name = n
		return zygo.SexpNull, nil
	})
}
