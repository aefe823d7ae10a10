package scene

import (
	"testing"

	"github.com/df07/glossy/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters()
	assert.Equal(t, uint32(1), p.Supersampling)
	assert.Equal(t, float32(60), p.FieldOfView)
	assert.Equal(t, core.Vec3{}, p.Background)
	assert.Equal(t, uint32(0), p.RecursionDepth)
	assert.Equal(t, float32(50), p.MaxRenderDistance)

	assert.InDelta(t, 1.0471976, p.FieldOfViewRadians(), 1e-6)
	assert.InDelta(t, 0.57735026, p.FieldOfViewTangent(), 1e-6)
}

func TestScene_ShapeTypes(t *testing.T) {
	s := New()
	assert.Empty(t, s.ShapeTypes())

	s.Objects = []Object{NewPlane(), NewPlane()}
	assert.Equal(t, []ShapeType{ShapePlane}, s.ShapeTypes())

	s.Objects = append(s.Objects, NewSphere())
	assert.Equal(t, []ShapeType{ShapeSphere, ShapePlane}, s.ShapeTypes(), "emission order, not scene order")
}

func TestScene_Nearest(t *testing.T) {
	near := &Sphere{Position: core.NewVec3(0, 0, 5), Radius: 1}
	far := &Sphere{Position: core.NewVec3(0, 0, 10), Radius: 1}
	s := New()
	s.Objects = []Object{far, near}

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))
	hit, ok := s.Nearest(ray)
	require.True(t, ok)
	assert.Equal(t, 1, hit.Index)
	assert.Same(t, near, hit.Object)
	assert.InDelta(t, 4, hit.Distance, 1e-5)
	assert.InDelta(t, 0, hit.Point.Subtract(core.NewVec3(0, 0, 4)).Length(), 1e-5)
	assert.InDelta(t, 0, hit.Normal.Subtract(core.NewVec3(0, 0, -1)).Length(), 1e-5)

	_, ok = s.Nearest(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)))
	assert.False(t, ok)
}

func TestScene_NearestTieGoesToFirstDeclared(t *testing.T) {
	first := &Sphere{Position: core.NewVec3(0, 0, 5), Radius: 1}
	second := &Sphere{Position: core.NewVec3(0, 0, 5), Radius: 1}
	s := New()
	s.Objects = []Object{first, second}

	hit, ok := s.Nearest(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)))
	require.True(t, ok)
	assert.Equal(t, 0, hit.Index)
}

func TestScene_NearestRespectsRenderDistance(t *testing.T) {
	s := New()
	s.Parameters.MaxRenderDistance = 4
	s.Objects = []Object{&Sphere{Position: core.NewVec3(0, 0, 5), Radius: 1}}

	_, ok := s.Nearest(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)))
	assert.False(t, ok, "hit at exactly the render distance is culled")

	s.Parameters.MaxRenderDistance = 4.5
	_, ok = s.Nearest(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)))
	assert.True(t, ok)
}

func TestScene_ViewRay(t *testing.T) {
	s := New()
	s.Parameters.FieldOfView = 90
	basis := core.CameraBasis(0, 0)
	resolution := core.NewVec2(200, 100)
	pos := core.NewVec3(0, 1, 0)

	center := s.ViewRay(pos, basis, core.NewVec2(100, 50), resolution)
	assert.Equal(t, pos, center.Origin)
	assert.InDelta(t, 0, center.Direction.Subtract(core.NewVec3(0, 0, 1)).Length(), 1e-6)

	// top edge of a 90° view is 45° up
	top := s.ViewRay(pos, basis, core.NewVec2(100, 100), resolution)
	assert.InDelta(t, top.Direction.Y, top.Direction.Z, 1e-5)
	assert.Greater(t, top.Direction.Y, float32(0))
}

func TestLight_AppendGLSL(t *testing.T) {
	tests := []struct {
		name     string
		light    Light
		expected string
	}{
		{
			name:     "numeric",
			light:    NewLight(NumberVec3(core.NewVec3(1, 2.5, -3))),
			expected: "light( vec3( 1.0, 2.5, -3.0 ), vec3( 1.0, 1.0, 1.0 ) )",
		},
		{
			name: "expression spliced verbatim",
			light: Light{
				Position: TextVec3{Expr("sin(global_time)"), Number(5), Number(0)},
				Color:    core.NewVec3(0.5, 0.5, 0.5),
			},
			expected: "light( vec3( sin(global_time), 5.0, 0.0 ), vec3( 0.5, 0.5, 0.5 ) )",
		},
		{
			name:     "expression with comma is parenthesized",
			light:    NewLight(TextVec3{Expr("max(global_time, 1.0)"), Number(0), Number(0)}),
			expected: "light( vec3( ( max(global_time, 1.0) ), 0.0, 0.0 ), vec3( 1.0, 1.0, 1.0 ) )",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.light.AppendGLSL(nil)))
		})
	}
}

func TestTextVec3_Vec3(t *testing.T) {
	v, ok := NumberVec3(core.NewVec3(1, 2, 3)).Vec3()
	assert.True(t, ok)
	assert.Equal(t, core.NewVec3(1, 2, 3), v)

	_, ok = TextVec3{Number(1), Expr("global_time"), Number(3)}.Vec3()
	assert.False(t, ok)
}

func TestNewDefaultScene(t *testing.T) {
	s := NewDefaultScene()
	assert.NotEmpty(t, s.Lights)
	assert.Equal(t, 4, s.GetPrimitiveCount())
	assert.Equal(t, []ShapeType{ShapeSphere, ShapePlane}, s.ShapeTypes())

	// the camera starts one unit above the floor looking down +z
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1))
	hit, ok := s.Nearest(ray)
	require.True(t, ok)
	assert.Equal(t, ShapeSphere, hit.Object.Type())
	assert.True(t, hit.Object.Surface().Specular)
}
