package scene

import (
	"github.com/chewxy/math32"
	"github.com/df07/glossy/pkg/core"
)

// ShapeType is the tag naming an Object variant, both in scene documents
// and as the struct name in generated source
type ShapeType string

const (
	ShapeSphere ShapeType = "sphere"
	ShapePlane  ShapeType = "plane"
)

// ShapeTypes lists every variant in the order their kernels are emitted
var ShapeTypes = []ShapeType{ShapeSphere, ShapePlane}

// Object is a primitive in the scene. The set of implementations is closed:
// *Sphere and *Plane.
type Object interface {
	// Type returns the variant tag
	Type() ShapeType
	// Origin returns the object's position, the reference point for checkering
	Origin() core.Vec3
	// Surface returns the object's material
	Surface() Material
	// Intersect returns the distance along the ray to the nearest intersection
	// in front of the origin, or core.NoHit. The ray direction must be normalized.
	Intersect(ray core.Ray) float32
	// NormalAt returns the unit surface normal at a point on the object
	NormalAt(point core.Vec3) core.Vec3
	// AppendGLSL appends the object as a constructor call of its struct
	AppendGLSL(b []byte) []byte

	object()
}

// Sphere is a sphere given by its center and radius
type Sphere struct {
	Position core.Vec3
	Radius   float32
	Material Material
}

// NewSphere creates a unit sphere at the origin with the default material
func NewSphere() *Sphere {
	return &Sphere{Radius: 1, Material: DefaultMaterial()}
}

func (s *Sphere) object() {}

// Type returns ShapeSphere
func (s *Sphere) Type() ShapeType { return ShapeSphere }

// Origin returns the center of the sphere
func (s *Sphere) Origin() core.Vec3 { return s.Position }

// Surface returns the sphere's material
func (s *Sphere) Surface() Material { return s.Material }

// Intersect solves |o + t*d - p|² = r² and returns the smallest
// non-negative root, so a ray starting inside the sphere hits its far side.
func (s *Sphere) Intersect(ray core.Ray) float32 {
	oc := ray.Origin.Subtract(s.Position)
	ang := ray.Direction.Dot(oc)
	radicand := ang*ang - oc.LengthSquared() + s.Radius*s.Radius
	if radicand < 0 {
		return core.NoHit
	}
	radicand = math32.Sqrt(radicand)

	near, far := -ang-radicand, -ang+radicand
	if far < 0 {
		return core.NoHit
	}
	if near < 0 {
		return far
	}
	return near
}

// NormalAt returns the outward normal at point
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Position).Normalize()
}

// AppendGLSL appends e.g. sphere( vec3( 0.0, 1.0, 0.0 ), 1.0, material( ... ) )
func (s *Sphere) AppendGLSL(b []byte) []byte {
	b = append(b, string(ShapeSphere)...)
	b = append(b, "( "...)
	b = s.Position.AppendGLSL(b)
	b = append(b, ", "...)
	b = core.AppendFloat(b, s.Radius)
	b = append(b, ", "...)
	b = s.Material.AppendGLSL(b)
	return append(b, " )"...)
}

// Plane is an infinite plane through Position facing Normal
type Plane struct {
	Position core.Vec3
	Normal   core.Vec3
	Material Material
}

// NewPlane creates the y=0 ground plane with the default material
func NewPlane() *Plane {
	return &Plane{Normal: core.NewVec3(0, 1, 0), Material: DefaultMaterial()}
}

func (p *Plane) object() {}

// Type returns ShapePlane
func (p *Plane) Type() ShapeType { return ShapePlane }

// Origin returns the plane's reference point
func (p *Plane) Origin() core.Vec3 { return p.Position }

// Surface returns the plane's material
func (p *Plane) Surface() Material { return p.Material }

// Intersect returns the distance to the plane if it lies strictly in front
// of the ray. Rays parallel to the plane never hit it.
func (p *Plane) Intersect(ray core.Ray) float32 {
	denom := ray.Direction.Dot(p.Normal)
	if denom != 0 {
		t := p.Position.Subtract(ray.Origin).Dot(p.Normal) / denom
		if t > 0 {
			return t
		}
	}
	return core.NoHit
}

// NormalAt returns the plane normal; it is the same everywhere
func (p *Plane) NormalAt(core.Vec3) core.Vec3 {
	return p.Normal.Normalize()
}

// AppendGLSL appends e.g. plane( vec3( 0.0, 0.0, 0.0 ), vec3( 0.0, 1.0, 0.0 ), material( ... ) )
func (p *Plane) AppendGLSL(b []byte) []byte {
	b = append(b, string(ShapePlane)...)
	b = append(b, "( "...)
	b = p.Position.AppendGLSL(b)
	b = append(b, ", "...)
	b = p.Normal.AppendGLSL(b)
	b = append(b, ", "...)
	b = p.Material.AppendGLSL(b)
	return append(b, " )"...)
}
