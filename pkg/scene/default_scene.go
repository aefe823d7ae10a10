package scene

import "github.com/df07/glossy/pkg/core"

// NewDefaultScene creates the scene compiled when no document is given:
// a checkered floor, a mirror sphere flanked by two diffuse spheres, a fixed
// light and one circling overhead.
func NewDefaultScene() *Scene {
	s := New()
	s.Parameters.Background = core.NewVec3(0.4, 0.6, 0.9)
	s.Parameters.RecursionDepth = 2

	s.Lights = []Light{
		NewLight(NumberVec3(core.NewVec3(-4, 6, -2))),
		{
			Position: TextVec3{Expr("4.0 * sin( global_time )"), Number(5), Expr("4.0 * cos( global_time ) + 6.0")},
			Color:    core.NewVec3(0.9, 0.8, 0.6),
		},
	}

	floor := NewPlane()
	floor.Material = Material{
		Color:     core.NewVec3(0.9, 0.9, 0.9),
		Checkered: true,
		Diffuse:   true,
	}

	mirror := NewSphere()
	mirror.Position = core.NewVec3(0, 1, 6)
	mirror.Material = Material{
		Color:    core.NewVec3(0.9, 0.9, 0.9),
		Specular: true,
	}

	red := NewSphere()
	red.Position = core.NewVec3(-2.5, 0.75, 7)
	red.Radius = 0.75
	red.Material = Material{
		Color:    core.NewVec3(0.9, 0.2, 0.2),
		Diffuse:  true,
		Specular: true,
	}

	blue := NewSphere()
	blue.Position = core.NewVec3(2.5, 0.75, 7)
	blue.Radius = 0.75
	blue.Material.Color = core.NewVec3(0.2, 0.3, 0.9)

	s.Objects = []Object{floor, mirror, red, blue}
	return s
}
