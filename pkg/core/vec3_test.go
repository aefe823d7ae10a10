package core

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-6

func TestVec3_Arithmetic(t *testing.T) {
	u := NewVec3(1, 2, 3)
	v := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), u.Add(v))
	assert.Equal(t, NewVec3(-3, -3, -3), u.Subtract(v))
	assert.Equal(t, NewVec3(2, 4, 6), u.Multiply(2))
	assert.Equal(t, NewVec3(4, 10, 18), u.MultiplyVec(v))
	assert.Equal(t, NewVec3(-1, -2, -3), u.Negate())
	assert.Equal(t, float32(32), u.Dot(v))
	assert.Equal(t, float32(14), u.LengthSquared())
}

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		u, v     Vec3
		expected Vec3
	}{
		{"x cross y", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"y cross z", NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 0, 0)},
		{"z cross x", NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"parallel", NewVec3(2, 0, 0), NewVec3(5, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.u.Cross(tt.v))
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(3, 0, 4).Normalize()
	assert.InDelta(t, 1, n.Length(), tolerance)
	assert.InDelta(t, 0.6, n.X, tolerance)
	assert.InDelta(t, 0.8, n.Z, tolerance)

	assert.Equal(t, Vec3{}, Vec3{}.Normalize(), "zero vector stays zero")
}

func TestVec3_Reflect(t *testing.T) {
	d := NewVec3(1, -1, 0)
	r := d.Reflect(NewVec3(0, 1, 0))
	assert.Equal(t, NewVec3(1, 1, 0), r)
}

func TestRay_At(t *testing.T) {
	r := NewRay(NewVec3(0, 1, 0), NewVec3(0, 0, 1))
	assert.Equal(t, NewVec3(0, 1, 2.5), r.At(2.5))
}

func TestNoHit(t *testing.T) {
	assert.True(t, IsNoHit(NoHit))
	assert.False(t, IsNoHit(1e30))
	assert.False(t, IsNoHit(math32.Inf(-1)))
}

func TestDegToRad(t *testing.T) {
	assert.InDelta(t, Pi/3, DegToRad(60), tolerance)
	assert.InDelta(t, Pi, DegToRad(180), tolerance)
	assert.InDelta(t, 90, RadToDeg(Pi/2), 1e-4)
}

func TestCameraBasis(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float32
		at, up     Vec3
		right      Vec3
	}{
		{
			name: "looking down +z",
			at:   NewVec3(0, 0, 1), up: NewVec3(0, 1, 0), right: NewVec3(1, 0, 0),
		},
		{
			name: "quarter turn",
			yaw:  Pi / 2,
			at:   NewVec3(1, 0, 0), up: NewVec3(0, 1, 0), right: NewVec3(0, 0, -1),
		},
		{
			name:  "pitch is clamped",
			pitch: Pi,
			at:    NewVec3(0, 1, 0), up: NewVec3(0, 0, -1), right: NewVec3(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := CameraBasis(tt.yaw, tt.pitch)
			assert.InDelta(t, 0, b.At.Subtract(tt.at).Length(), 1e-5, "at = %v", b.At)
			assert.InDelta(t, 0, b.Up.Subtract(tt.up).Length(), 1e-5, "up = %v", b.Up)
			assert.InDelta(t, 0, b.Right.Subtract(tt.right).Length(), 1e-5, "right = %v", b.Right)
			assert.InDelta(t, 0, b.At.Dot(b.Up), 1e-5, "basis must be orthogonal")
		})
	}
}

func TestWrapYaw(t *testing.T) {
	assert.InDelta(t, TwoPi-0.5, WrapYaw(-0.5), tolerance)
	assert.InDelta(t, 0.5, WrapYaw(TwoPi+0.5), 1e-5)
}

func TestAppendFloat(t *testing.T) {
	tests := []struct {
		in       float32
		expected string
	}{
		{0, "0.0"},
		{float32(math.Copysign(0, -1)), "0.0"},
		{1, "1.0"},
		{-2.25, "-2.25"},
		{0.1, "0.1"},
		{50, "50.0"},
		{1e20, "100000000000000000000.0"},
		{0.001, "0.001"},
		{math.MaxFloat32, "340282350000000000000000000000000000000.0"},
		{math.SmallestNonzeroFloat32, "0.000000000000000000000000000000000000000000001"},
		{math32.Inf(1), "( 1.0 / 0.0 )"},
		{math32.Inf(-1), "( -1.0 / 0.0 )"},
		{math32.NaN(), "( 0.0 / 0.0 )"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFloat(tt.in))
		})
	}
}

func TestVec_AppendGLSL(t *testing.T) {
	assert.Equal(t, "vec3( 1.0, 0.0, 0.5 )", NewVec3(1, 0, 0.5).String())
	assert.Equal(t, "vec2( 0.25, 0.25 )", NewVec2(0.25, 0.25).String())
	assert.Equal(t, "x=vec3( 1.0, 2.0, 3.0 )", string(NewVec3(1, 2, 3).AppendGLSL([]byte("x="))))
}
