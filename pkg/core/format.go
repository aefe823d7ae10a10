package core

import (
	"bytes"
	"strconv"

	"github.com/chewxy/math32"
)

// AppendFloat appends v as a GLSL float literal: the shortest decimal that
// round-trips through float32, never in exponent form, always with a
// decimal point. Infinities and NaN, which have no literal form, are written
// as the constant expressions that produce them.
func AppendFloat(b []byte, v float32) []byte {
	switch {
	case v == 0:
		// -0.0 folds to 0.0 so equal scenes emit equal text
		return append(b, "0.0"...)
	case math32.IsInf(v, 1):
		return append(b, "( 1.0 / 0.0 )"...)
	case math32.IsInf(v, -1):
		return append(b, "( -1.0 / 0.0 )"...)
	case math32.IsNaN(v):
		return append(b, "( 0.0 / 0.0 )"...)
	}
	start := len(b)
	b = strconv.AppendFloat(b, float64(v), 'f', -1, 32)
	if bytes.IndexByte(b[start:], '.') < 0 {
		b = append(b, '.', '0')
	}
	return b
}

// FormatFloat returns v as a GLSL float literal
func FormatFloat(v float32) string {
	return string(AppendFloat(nil, v))
}

// AppendFloats appends the values separated by ", "
func AppendFloats(b []byte, vs ...float32) []byte {
	for i, v := range vs {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = AppendFloat(b, v)
	}
	return b
}

// AppendGLSL appends the vector as a vec3 constructor, e.g. vec3( 1.0, 0.0, 0.5 )
func (v Vec3) AppendGLSL(b []byte) []byte {
	b = append(b, "vec3( "...)
	b = AppendFloats(b, v.X, v.Y, v.Z)
	return append(b, " )"...)
}

// AppendGLSL appends the vector as a vec2 constructor
func (v Vec2) AppendGLSL(b []byte) []byte {
	b = append(b, "vec2( "...)
	b = AppendFloats(b, v.X, v.Y)
	return append(b, " )"...)
}

// String returns the GLSL constructor form of the vector
func (v Vec3) String() string {
	return string(v.AppendGLSL(nil))
}

// String returns the GLSL constructor form of the vector
func (v Vec2) String() string {
	return string(v.AppendGLSL(nil))
}
