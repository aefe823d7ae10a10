// Package glsl compiles a validated scene into the source of a GLSL 1.30
// fragment shader that path traces it. The scene is baked into the program:
// parameters become constants, objects become named constants, and each
// recursion level gets its own copy of the materialize, eval and pathtrace
// functions so the shader never recurses.
package glsl

import (
	"github.com/df07/glossy/pkg/scene"
)

// Version is the first line of every generated program
const Version = "#version 130"

// Uniforms the host sets every frame
const (
	UniformResolution = "resolution"  // vec2, viewport size in pixels
	UniformTime       = "global_time" // float, seconds since start
	UniformPosition   = "pos"         // vec3, camera position
	UniformAt         = "at"          // vec3, camera forward
	UniformUp         = "up"          // vec3, camera up
	UniformRight      = "right"       // vec3, camera right
)

// Generate returns the fragment shader source for s. The scene must come
// from the loaders package; Generate does no validation of its own.
// Identical scenes always produce identical source.
func Generate(s *scene.Scene) string {
	return string(AppendSource(nil, s))
}

// AppendSource appends the fragment shader source for s to b and returns
// the extended buffer.
func AppendSource(b []byte, s *scene.Scene) []byte {
	levels := s.Parameters.RecursionDepth
	hasLights := len(s.Lights) > 0

	b = appendHeader(b)
	b = appendConstants(b, s.Parameters)
	b = append(b, utilitySource...)
	b = appendLights(b, s.Lights)
	b = appendForwards(b, levels)
	if hasLights {
		b = append(b, diffuseSource...)
	}
	b = append(b, materialSource...)
	for k := uint32(0); k <= levels; k++ {
		b = appendMaterialize(b, k, levels, hasLights)
	}
	for _, shape := range s.ShapeTypes() {
		b = appendKernels(b, shape, levels)
	}
	b = appendObjects(b, s.Objects)
	for k := uint32(0); k <= levels; k++ {
		b = appendPathtrace(b, k, len(s.Objects))
	}
	b = appendVisible(b, len(s.Objects))
	b = append(b, calcSource...)
	b = appendMain(b, s.Parameters.Supersampling, hasLights)
	return b
}

func appendHeader(b []byte) []byte {
	b = append(b, Version...)
	b = append(b, "\n\n"...)
	b = AppendUniformDecl(b, "vec2", UniformResolution)
	b = AppendUniformDecl(b, "float", UniformTime)
	for _, name := range []string{UniformPosition, UniformAt, UniformUp, UniformRight} {
		b = AppendUniformDecl(b, "vec3", name)
	}
	return append(b, '\n')
}

func appendConstants(b []byte, p scene.Parameters) []byte {
	b = AppendFloatConst(b, "fovy", p.FieldOfViewRadians())
	b = AppendFloatConst(b, "fovh", p.FieldOfViewTangent())
	b = append(b, "const float no_hit = 1.0 / 0.0;\n"...)
	b = AppendFloatConst(b, "render_distance", p.MaxRenderDistance)
	b = AppendVec3Const(b, "background", p.Background)
	return append(b, '\n')
}

// appendLights declares the light table. The table is filled by
// init_lights at the start of main so positions may use uniforms.
func appendLights(b []byte, lights []scene.Light) []byte {
	if len(lights) == 0 {
		return b
	}
	b = append(b, "light lights[ "...)
	b = appendUint(b, uint32(len(lights)))
	b = append(b, " ];\n"...)

	b = append(b, "void init_lights() {\n\tlights = light[ "...)
	b = appendUint(b, uint32(len(lights)))
	b = append(b, " ](\n"...)
	for i, l := range lights {
		b = append(b, "\t\t"...)
		b = l.AppendGLSL(b)
		if i < len(lights)-1 {
			b = append(b, ',')
		}
		b = append(b, '\n')
	}
	return append(b, "\t);\n}\n\n"...)
}

// appendForwards declares what materialize calls before it is defined
func appendForwards(b []byte, levels uint32) []byte {
	for k := uint32(1); k <= levels; k++ {
		b = append(b, "vec3 "...)
		b = appendLevelName(b, PathtracePrefix, k)
		b = append(b, "( ray r );\n"...)
	}
	b = append(b, "vec3 "...)
	b = append(b, PathtraceLit...)
	b = append(b, "( ray r ) {\n\treturn vec3( 1.0, 1.0, 1.0 );\n}\n"...)
	return append(b, "bool visible( ray r, light l );\n\n"...)
}

func appendObjects(b []byte, objects []scene.Object) []byte {
	for i, obj := range objects {
		b = append(b, "const "...)
		b = append(b, string(obj.Type())...)
		b = append(b, ' ')
		b = appendObjectName(b, i)
		b = append(b, " = "...)
		b = obj.AppendGLSL(b)
		b = append(b, ";\n"...)
	}
	if len(objects) > 0 {
		b = append(b, '\n')
	}
	return b
}

// appendVisible emits the shadow test: a light is visible unless some
// object lies strictly between the ray origin and the light
func appendVisible(b []byte, objects int) []byte {
	b = append(b, "bool visible( ray r, light l ) {\n"...)
	if objects == 0 {
		return append(b, "\treturn true;\n}\n\n"...)
	}
	b = append(b, "\tfloat dist = length( r.o - l.p );\n\treturn"...)
	for i := 0; i < objects; i++ {
		if i > 0 {
			b = append(b, " &&\n\t\t"...)
		} else {
			b = append(b, ' ')
		}
		b = append(b, "!occluded( r, dist, "...)
		b = appendObjectName(b, i)
		b = append(b, " )"...)
	}
	return append(b, ";\n}\n\n"...)
}

// appendMain emits the entry point. A single sample per pixel goes through
// the pixel center without a loop; otherwise an n×n grid of sub-pixel
// samples is averaged.
func appendMain(b []byte, n uint32, hasLights bool) []byte {
	b = append(b, "void main() {\n"...)
	if hasLights {
		b = append(b, "\tinit_lights();\n"...)
	}
	if n <= 1 {
		b = append(b, "\tgl_FragColor = vec4( calc( gl_FragCoord.xy + vec2( 0.5, 0.5 ) ), 1.0 );\n"...)
		return append(b, "}\n"...)
	}

	sub := 1 / float32(n)
	off := sub / 2
	b = append(b, "\tvec3 result = vec3( 0.0 );\n"...)
	b = append(b, "\tfor( int y = 0; y < "...)
	b = appendUint(b, n)
	b = append(b, "; ++y ) {\n\t\tfor( int x = 0; x < "...)
	b = appendUint(b, n)
	b = append(b, "; ++x ) {\n\t\t\tvec2 subpix = gl_FragCoord.xy + "...)
	b = appendVec2(b, off)
	b = append(b, " + "...)
	b = appendVec2(b, sub)
	b = append(b, " * vec2( x, y );\n\t\t\tresult += calc( subpix );\n\t\t}\n\t}\n"...)
	b = append(b, "\tgl_FragColor = vec4( result / "...)
	b = AppendFloat(b, float32(uint64(n)*uint64(n)))
	return append(b, ", 1.0 );\n}\n"...)
}

const utilitySource = `float sq( float x ) {
	return x * x;
}
float normsq( vec3 v ) {
	return dot( v, v );
}
void swap( inout float x, inout float y ) {
	float temp = x;
	x = y;
	y = temp;
}

struct ray {
	vec3 o;
	vec3 d;
};
vec3 propagate( ray r, float dist ) {
	return r.o + r.d * dist;
}

struct light {
	vec3 p;
	vec3 col;
};

`

const diffuseSource = `vec3 diffuse( light l, vec3 col, vec3 p, vec3 n ) {
	vec3 path = l.p - p;
	float len = length( path );
	path /= len;
	ray lr = ray( p, path );
	lr.o = propagate( lr, 1.0e-2 );
	return float( visible( lr, l ) ) * l.col * col / sq( len ) * dot( path, n );
}

`

const materialSource = `struct material {
	uint flags;
	vec3 col;
};
const uint mat_checkered = 0x01u;
const uint mat_diffuse = 0x02u;
const uint mat_specular = 0x04u;

`

const calcSource = `vec3 calc( vec2 screen_coord ) {
	vec2 normalized = ( screen_coord - resolution / 2.0 ) * 2.0 / resolution.y * fovh;
	ray pixelray = ray( pos, normalize( at + normalized.x * right + normalized.y * up ) );
	return pathtrace0( pixelray );
}

`
