package scene

import (
	"strings"

	"github.com/df07/glossy/pkg/core"
)

// CoordKind tells which form a Coord holds
type CoordKind int

const (
	// CoordNumber is a numeric literal
	CoordNumber CoordKind = iota
	// CoordExpr is free-form shader source, e.g. "sin( global_time )"
	CoordExpr
)

// Coord is one component of a light position: either a number or an
// expression that is copied into the generated source unchanged, which is
// how lights are animated.
type Coord struct {
	Kind   CoordKind
	Number float32
	Expr   string
}

// Number returns a numeric Coord
func Number(v float32) Coord {
	return Coord{Kind: CoordNumber, Number: v}
}

// Expr returns an expression Coord
func Expr(src string) Coord {
	return Coord{Kind: CoordExpr, Expr: src}
}

// Value returns the numeric value and whether the Coord is numeric
func (c Coord) Value() (float32, bool) {
	return c.Number, c.Kind == CoordNumber
}

// AppendGLSL appends the component. An expression containing a comma is
// parenthesized so it stays a single constructor argument.
func (c Coord) AppendGLSL(b []byte) []byte {
	if c.Kind == CoordNumber {
		return core.AppendFloat(b, c.Number)
	}
	if strings.ContainsRune(c.Expr, ',') {
		b = append(b, "( "...)
		b = append(b, c.Expr...)
		return append(b, " )"...)
	}
	return append(b, c.Expr...)
}

func (c Coord) String() string {
	return string(c.AppendGLSL(nil))
}

// TextVec3 is a vector whose components may be expressions
type TextVec3 [3]Coord

// NumberVec3 converts a numeric vector
func NumberVec3(v core.Vec3) TextVec3 {
	return TextVec3{Number(v.X), Number(v.Y), Number(v.Z)}
}

// Vec3 returns the numeric vector if every component is a number
func (v TextVec3) Vec3() (core.Vec3, bool) {
	x, okX := v[0].Value()
	y, okY := v[1].Value()
	z, okZ := v[2].Value()
	return core.NewVec3(x, y, z), okX && okY && okZ
}

// AppendGLSL appends the vector as a vec3 constructor
func (v TextVec3) AppendGLSL(b []byte) []byte {
	b = append(b, "vec3( "...)
	for i, c := range v {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = c.AppendGLSL(b)
	}
	return append(b, " )"...)
}

// Light is a white-or-colored point light
type Light struct {
	Position TextVec3
	Color    core.Vec3
}

// NewLight creates a white light at the given position
func NewLight(position TextVec3) Light {
	return Light{Position: position, Color: core.NewVec3(1, 1, 1)}
}

// AppendGLSL appends e.g. light( vec3( 0.0, 5.0, sin( global_time ) ), vec3( 1.0, 1.0, 1.0 ) )
func (l Light) AppendGLSL(b []byte) []byte {
	b = append(b, "light( "...)
	b = l.Position.AppendGLSL(b)
	b = append(b, ", "...)
	b = l.Color.AppendGLSL(b)
	return append(b, " )"...)
}
