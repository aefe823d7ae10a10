package scene

import "github.com/df07/glossy/pkg/core"

// Material describes how a surface responds to light. The three flags are
// independent; a material with none of them set renders black.
type Material struct {
	Color     core.Vec3
	Checkered bool // halves the color on alternating unit squares of the local xz grid
	Diffuse   bool // lit by every light in the scene
	Specular  bool // mirrors the scene, one bounce per recursion level
}

// DefaultMaterial returns the material objects get when none is given:
// a diffuse magenta that stands out in a scene.
func DefaultMaterial() Material {
	return Material{
		Color:   core.NewVec3(1, 0, 1),
		Diffuse: true,
	}
}

// Material flag names as they appear in generated source
const (
	FlagCheckered = "mat_checkered"
	FlagDiffuse   = "mat_diffuse"
	FlagSpecular  = "mat_specular"
)

// Flags returns the names of the active flags in declaration order
func (m Material) Flags() []string {
	var flags []string
	if m.Checkered {
		flags = append(flags, FlagCheckered)
	}
	if m.Diffuse {
		flags = append(flags, FlagDiffuse)
	}
	if m.Specular {
		flags = append(flags, FlagSpecular)
	}
	return flags
}

// Contributions returns how many light transport terms the material adds up.
// Checkered only tints, so it does not count.
func (m Material) Contributions() int {
	n := 0
	if m.Diffuse {
		n++
	}
	if m.Specular {
		n++
	}
	return n
}

// AppendGLSL appends the material as a constructor call,
// e.g. material( mat_diffuse | mat_specular, vec3( 1.0, 0.0, 0.0 ) )
func (m Material) AppendGLSL(b []byte) []byte {
	b = append(b, "material( "...)
	flags := m.Flags()
	if len(flags) == 0 {
		b = append(b, "0u"...)
	}
	for i, flag := range flags {
		if i > 0 {
			b = append(b, " | "...)
		}
		b = append(b, flag...)
	}
	b = append(b, ", "...)
	b = m.Color.AppendGLSL(b)
	return append(b, " )"...)
}
