package glsl

import (
	"fmt"

	"github.com/df07/glossy/pkg/scene"
)

// shapeSource holds the struct and the intersect/normal kernels of each
// shape. Field order matches the shape's AppendGLSL constructor.
var shapeSource = map[scene.ShapeType]string{
	scene.ShapeSphere: `struct sphere {
	vec3 p;
	float r;
	material mat;
};
float intersect( ray r, const sphere obj ) {
	float ang = dot( r.d, r.o - obj.p );
	float radicand = sq( ang ) - normsq( r.o - obj.p ) + sq( obj.r );
	if( radicand < 0.0 )
		return no_hit;
	radicand = sqrt( radicand );
	float r1 = -ang - radicand;
	float r2 = -ang + radicand;
	if( r1 > r2 )
		swap( r1, r2 );
	if( r2 < 0.0 )
		return no_hit;
	if( r1 < 0.0 )
		return r2;
	return r1;
}
vec3 normal( vec3 i, const sphere obj ) {
	return normalize( i - obj.p );
}
`,
	scene.ShapePlane: `struct plane {
	vec3 p;
	vec3 n;
	material mat;
};
float intersect( ray r, const plane obj ) {
	float denom = dot( r.d, obj.n );
	if( denom != 0.0 ) {
		float t = dot( obj.p - r.o, obj.n ) / denom;
		if( t > 0.0 )
			return t;
	}
	return no_hit;
}
vec3 normal( vec3 i, const plane obj ) {
	return normalize( obj.n );
}
`,
}

// appendKernels emits everything one shape needs: its struct, intersect,
// normal and occluded kernels, and one eval kernel per recursion level
func appendKernels(b []byte, shape scene.ShapeType, levels uint32) []byte {
	src, ok := shapeSource[shape]
	if !ok {
		panic(fmt.Sprintf("glsl: no kernels for shape %q", shape))
	}
	b = append(b, src...)
	b = appendOccluded(b, shape)
	for k := uint32(0); k <= levels; k++ {
		b = appendEval(b, shape, k)
	}
	return append(b, '\n')
}

// appendOccluded emits the shadow kernel: the object blocks the ray only if
// it is hit strictly before dist
func appendOccluded(b []byte, shape scene.ShapeType) []byte {
	b = append(b, "bool occluded( ray r, float dist, const "...)
	b = append(b, string(shape)...)
	return append(b, ` obj ) {
	float d = intersect( r, obj );
	return d != no_hit && d < dist;
}
`...)
}
