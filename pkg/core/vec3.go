package core

import "github.com/chewxy/math32"

// Vec3 represents a 3D vector with the precision of a GLSL vec3
type Vec3 struct {
	X, Y, Z float32
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float32) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float32 {
	return v.Dot(v)
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return v.Multiply(1 / length)
}

// Reflect reflects the vector about the unit normal n, like GLSL reflect()
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Subtract(n.Multiply(2 * n.Dot(v)))
}

// Array returns the components in x, y, z order
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Subtract returns the difference of two vectors
func (v Vec2) Subtract(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Multiply returns the vector scaled by a scalar
func (v Vec2) Multiply(scalar float32) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

// Dot returns the dot product of two vectors
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude of the vector
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// NoHit is the intersection distance reported when a ray misses
var NoHit = math32.Inf(1)

// IsNoHit reports whether t is the no-hit sentinel
func IsNoHit(t float32) bool {
	return math32.IsInf(t, 1)
}
