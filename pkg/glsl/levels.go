package glsl

import (
	"strconv"

	"github.com/df07/glossy/pkg/scene"
)

// Name prefixes of the functions generated once per recursion level.
// Level k of materialize is materialize<k>, and so on.
const (
	MaterializePrefix = "materialize"
	PathtracePrefix   = "pathtrace"
	EvalPrefix        = "eval"

	// PathtraceLit is called by the last level instead of recursing.
	// It treats the reflected ray as fully lit.
	PathtraceLit = "pathtrace_lit"

	// ObjectPrefix names the object constants obj0, obj1, ...
	ObjectPrefix = "obj"
)

// LevelName returns the name of a per-level function, e.g. pathtrace2
func LevelName(prefix string, k uint32) string {
	return string(appendLevelName(nil, prefix, k))
}

func appendLevelName(b []byte, prefix string, k uint32) []byte {
	b = append(b, prefix...)
	return strconv.AppendUint(b, uint64(k), 10)
}

// appendNextPathtrace appends the function the specular branch of level k
// reflects into
func appendNextPathtrace(b []byte, k, levels uint32) []byte {
	if k >= levels {
		return append(b, PathtraceLit...)
	}
	return appendLevelName(b, PathtracePrefix, k+1)
}

// appendMaterialize emits the color of a material at a hit point for one
// recursion level. Diffuse and specular contributions are averaged; a
// material with neither is black.
func appendMaterialize(b []byte, k, levels uint32, hasLights bool) []byte {
	b = append(b, "vec3 "...)
	b = appendLevelName(b, MaterializePrefix, k)
	b = append(b, `( ray r, const material mat, vec3 glob, vec3 rel, vec3 n ) {
	vec3 col = mat.col;
	vec3 result = vec3( 0.0 );
	float denom = 0.0;
	if( ( mat.flags & mat_checkered ) != 0u ) {
		if( ( mod( rel.x, 2.0 ) < 1.0 ) ^^ ( mod( rel.z, 2.0 ) < 1.0 ) )
			col *= 0.5;
	}
	if( ( mat.flags & mat_diffuse ) != 0u ) {
`...)
	if hasLights {
		b = append(b, `		for( int i = 0; i < lights.length(); ++i )
			result += diffuse( lights[ i ], col, glob, n );
`...)
	} else {
		b = append(b, "\t\tresult += col * background;\n"...)
	}
	b = append(b, `		denom += 1.0;
	}
	if( ( mat.flags & mat_specular ) != 0u ) {
		ray ref = ray( glob, reflect( r.d, n ) );
		ref.o = propagate( ref, 1.0e-3 );
		result += col * `...)
	b = appendNextPathtrace(b, k, levels)
	return append(b, `( ref );
		denom += 1.0;
	}
	if( denom == 0.0 )
		return vec3( 0.0 );
	return result / denom;
}

`...)
}

// appendEval emits the keep-nearest kernel of one shape for level k. The
// running color is replaced only on a strictly nearer hit inside the render
// distance, so the first declared object wins ties.
func appendEval(b []byte, shape scene.ShapeType, k uint32) []byte {
	b = append(b, "void "...)
	b = appendLevelName(b, EvalPrefix, k)
	b = append(b, "( ray r, inout vec3 col, inout float dist, const "...)
	b = append(b, string(shape)...)
	b = append(b, ` obj ) {
	float d = intersect( r, obj );
	if( d != no_hit && d < dist && d < render_distance ) {
		vec3 i = propagate( r, d );
		col = `...)
	b = appendLevelName(b, MaterializePrefix, k)
	return append(b, `( r, obj.mat, i, i - obj.p, normal( i, obj ) );
		dist = d;
	}
}
`...)
}

// appendPathtrace emits the dispatch for level k: every object is tested in
// declaration order and the nearest one's color wins
func appendPathtrace(b []byte, k uint32, objects int) []byte {
	b = append(b, "vec3 "...)
	b = appendLevelName(b, PathtracePrefix, k)
	b = append(b, "( ray r ) {\n\tvec3 col = background;\n\tfloat dist = no_hit;\n"...)
	for i := 0; i < objects; i++ {
		b = append(b, '\t')
		b = appendLevelName(b, EvalPrefix, k)
		b = append(b, "( r, col, dist, "...)
		b = appendObjectName(b, i)
		b = append(b, " );\n"...)
	}
	return append(b, "\treturn col;\n}\n\n"...)
}
