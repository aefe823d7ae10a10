package glsl

import (
	"strconv"

	"github.com/df07/glossy/pkg/core"
)

// AppendUniformDecl appends e.g. "uniform vec3 pos;\n"
func AppendUniformDecl(b []byte, typename, name string) []byte {
	b = append(b, "uniform "...)
	b = append(b, typename...)
	b = append(b, ' ')
	b = append(b, name...)
	return append(b, ";\n"...)
}

// AppendFloatConst appends e.g. "const float fovh = 0.57735026;\n"
func AppendFloatConst(b []byte, name string, v float32) []byte {
	b = append(b, "const float "...)
	b = append(b, name...)
	b = append(b, " = "...)
	b = AppendFloat(b, v)
	return append(b, ";\n"...)
}

// AppendVec3Const appends e.g. "const vec3 background = vec3( 0.0, 0.0, 0.0 );\n"
func AppendVec3Const(b []byte, name string, v core.Vec3) []byte {
	b = append(b, "const vec3 "...)
	b = append(b, name...)
	b = append(b, " = "...)
	b = v.AppendGLSL(b)
	return append(b, ";\n"...)
}

// AppendFloat appends a float literal that GLSL reads as a float
func AppendFloat(b []byte, v float32) []byte {
	return core.AppendFloat(b, v)
}

func appendUint(b []byte, v uint32) []byte {
	return strconv.AppendUint(b, uint64(v), 10)
}

// appendVec2 appends a vec2 with both components set to v
func appendVec2(b []byte, v float32) []byte {
	return core.NewVec2(v, v).AppendGLSL(b)
}

func appendObjectName(b []byte, i int) []byte {
	b = append(b, ObjectPrefix...)
	return strconv.AppendInt(b, int64(i), 10)
}

// ObjectName returns the name of the i-th object constant, e.g. obj3
func ObjectName(i int) string {
	return string(appendObjectName(nil, i))
}
