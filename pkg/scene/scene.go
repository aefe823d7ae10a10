package scene

import (
	"github.com/chewxy/math32"
	"github.com/df07/glossy/pkg/core"
)

// Parameters are the global rendering settings of a scene
type Parameters struct {
	Supersampling     uint32    // Samples per pixel along each axis, at least 1
	FieldOfView       float32   // Vertical field of view in degrees, in (0, 180)
	Background        core.Vec3 // Color of rays that hit nothing, each channel in [0, 1]
	RecursionDepth    uint32    // Number of specular bounces before the ray counts as fully lit
	MaxRenderDistance float32   // Hits farther than this are ignored, positive
}

// DefaultParameters returns the settings used for keys a document omits
func DefaultParameters() Parameters {
	return Parameters{
		Supersampling:     1,
		FieldOfView:       60,
		Background:        core.Vec3{},
		RecursionDepth:    0,
		MaxRenderDistance: 50,
	}
}

// FieldOfViewRadians returns the field of view in radians
func (p Parameters) FieldOfViewRadians() float32 {
	return core.DegToRad(p.FieldOfView)
}

// FieldOfViewTangent returns tan(fov/2), the half-height of the image plane
// at unit distance
func (p Parameters) FieldOfViewTangent() float32 {
	return math32.Tan(p.FieldOfViewRadians() / 2)
}

// Scene is a validated scene: parameters plus lights and objects in document
// order. Object order matters: it fixes the names in generated source and
// the first-declared object wins when two hits are equally near.
type Scene struct {
	Parameters Parameters
	Lights     []Light
	Objects    []Object
}

// New creates an empty scene with default parameters
func New() *Scene {
	return &Scene{Parameters: DefaultParameters()}
}

// ShapeTypes returns the variants that occur in the scene, in emission order
func (s *Scene) ShapeTypes() []ShapeType {
	present := make(map[ShapeType]bool)
	for _, obj := range s.Objects {
		present[obj.Type()] = true
	}
	var types []ShapeType
	for _, t := range ShapeTypes {
		if present[t] {
			types = append(types, t)
		}
	}
	return types
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}

// Hit describes the nearest intersection of a ray with the scene
type Hit struct {
	Index    int // Position of the object in Objects
	Object   Object
	Distance float32
	Point    core.Vec3
	Normal   core.Vec3
}

// Nearest finds the object a ray hits first, with the same rules as the
// generated path tracer: a hit replaces the current one only when strictly
// nearer, and hits at or beyond MaxRenderDistance are ignored.
func (s *Scene) Nearest(ray core.Ray) (Hit, bool) {
	best := Hit{Index: -1, Distance: core.NoHit}
	for i, obj := range s.Objects {
		d := obj.Intersect(ray)
		if core.IsNoHit(d) || d >= best.Distance || d >= s.Parameters.MaxRenderDistance {
			continue
		}
		best.Index = i
		best.Object = obj
		best.Distance = d
	}
	if best.Index < 0 {
		return Hit{}, false
	}
	best.Point = ray.At(best.Distance)
	best.Normal = best.Object.NormalAt(best.Point)
	return best, true
}

// DefaultCameraPosition is where the viewer starts: one unit above the
// origin, looking down +z
var DefaultCameraPosition = core.NewVec3(0, 1, 0)

// ViewRay returns the primary ray through a screen position for a camera at
// pos with the given basis, matching the generated calc() function.
// Screen coordinates are in pixels with the origin at the bottom left.
func (s *Scene) ViewRay(pos core.Vec3, basis core.Basis, screen, resolution core.Vec2) core.Ray {
	scale := 2 / resolution.Y * s.Parameters.FieldOfViewTangent()
	normalized := screen.Subtract(resolution.Multiply(0.5)).Multiply(scale)
	dir := basis.At.
		Add(basis.Right.Multiply(normalized.X)).
		Add(basis.Up.Multiply(normalized.Y)).
		Normalize()
	return core.NewRay(pos, dir)
}
