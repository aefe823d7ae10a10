package loaders

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/df07/glossy/pkg/core"
	"github.com/df07/glossy/pkg/scene"
	"github.com/tidwall/gjson"
)

// Top-level keys of a scene document
const (
	KeySupersampling     = "SS"
	KeyFieldOfView       = "fovy"
	KeyBackground        = "background"
	KeyRecursion         = "recursion"
	KeyRenderingDistance = "rendering_distance"
	KeyLights            = "lights"
	KeyObjects           = "objects"
)

// MaxSupersampling is the largest SS whose sample loop bound fits in a
// GLSL int
const MaxSupersampling = math.MaxInt32

// ParseScene reads a scene document from r and validates it
func ParseScene(r io.Reader) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return ParseSceneBytes(data)
}

// LoadScene loads and validates a scene document from a file
func LoadScene(filename string) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	return ParseSceneBytes(data)
}

// ParseSceneBytes decodes a scene document and validates it. Keys are visited
// in document order and decoding stops at the first structural error; range
// checks run only once the whole document has decoded. No scene is returned
// on error. The error is always a *ValidationError.
func ParseSceneBytes(data []byte) (*scene.Scene, error) {
	if !gjson.ValidBytes(data) {
		return nil, structural("", "", "scene document is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, structural("", "", "scene document must be an object")
	}

	s := scene.New()
	err := forEachKey(root, func(key string, value gjson.Result) error {
		switch key {
		case KeySupersampling:
			return readUint(value, "", key, &s.Parameters.Supersampling)
		case KeyFieldOfView:
			return readNumber(value, "", key, &s.Parameters.FieldOfView)
		case KeyBackground:
			return readVec3(value, "", key, &s.Parameters.Background)
		case KeyRecursion:
			return readUint(value, "", key, &s.Parameters.RecursionDepth)
		case KeyRenderingDistance:
			return readNumber(value, "", key, &s.Parameters.MaxRenderDistance)
		case KeyLights:
			return readArray(value, key, func(elem gjson.Result, path string) error {
				light, err := readLight(elem, path)
				if err != nil {
					return err
				}
				s.Lights = append(s.Lights, light)
				return nil
			})
		case KeyObjects:
			return readArray(value, key, func(elem gjson.Result, path string) error {
				obj, err := readObject(elem, path)
				if err != nil {
					return err
				}
				s.Objects = append(s.Objects, obj)
				return nil
			})
		default:
			return structural("", key, "unrecognized option: %s", key)
		}
	})
	if err != nil {
		return nil, err
	}

	if err := validateParameters(s.Parameters); err != nil {
		return nil, err
	}
	return s, nil
}

// validateParameters checks the numeric domains of the scene parameters
func validateParameters(p scene.Parameters) error {
	if p.Supersampling == 0 {
		return rangeError(KeySupersampling, "SS must be positive")
	}
	if p.Supersampling > MaxSupersampling {
		return rangeError(KeySupersampling, "SS must be at most %d", MaxSupersampling)
	}
	if !(p.FieldOfView > 0 && p.FieldOfView < 180) {
		return rangeError(KeyFieldOfView, "fovy must be in (0, 180)")
	}
	for i, channel := range p.Background.Array() {
		if channel < 0 || channel > 1 {
			name := KeyBackground + "." + string("rgb"[i])
			return rangeError(name, "%s must be in [0, 1]", name)
		}
	}
	if !(p.MaxRenderDistance > 0) {
		return rangeError(KeyRenderingDistance, "rendering_distance must be positive")
	}
	if math32.IsInf(p.MaxRenderDistance, 1) {
		return rangeError(KeyRenderingDistance, "rendering_distance must be finite")
	}
	return nil
}

func readLight(value gjson.Result, path string) (scene.Light, error) {
	light := scene.NewLight(scene.TextVec3{})
	hasPosition := false
	err := forEachKey(value, func(key string, field gjson.Result) error {
		switch key {
		case "position":
			hasPosition = true
			return readTextVec3(field, path, key, &light.Position)
		case "color":
			return readVec3(field, path, key, &light.Color)
		default:
			return structural(path, join(path, key), "unrecognized light property: %s", key)
		}
	})
	if err != nil {
		return scene.Light{}, err
	}
	if !hasPosition {
		return scene.Light{}, structural(path, join(path, "position"), "lights must define the position property")
	}
	return light, nil
}

func readObject(value gjson.Result, path string) (scene.Object, error) {
	shape := value.Get("shape")
	if !shape.Exists() {
		return nil, structural(path, join(path, "shape"), "objects must define the shape property")
	}
	if shape.Type != gjson.String {
		return nil, structural(path, join(path, "shape"), "shape must be a string")
	}

	var (
		obj   scene.Object
		pos   *core.Vec3
		mat   *scene.Material
		extra func(key string, field gjson.Result) (bool, error)
	)
	switch scene.ShapeType(shape.Str) {
	case scene.ShapeSphere:
		sphere := scene.NewSphere()
		obj, pos, mat = sphere, &sphere.Position, &sphere.Material
		extra = func(key string, field gjson.Result) (bool, error) {
			if key != "radius" {
				return false, nil
			}
			return true, readFloat(field, path, key, &sphere.Radius)
		}
	case scene.ShapePlane:
		plane := scene.NewPlane()
		obj, pos, mat = plane, &plane.Position, &plane.Material
		extra = func(key string, field gjson.Result) (bool, error) {
			if key != "normal" {
				return false, nil
			}
			return true, readVec3(field, path, key, &plane.Normal)
		}
	default:
		return nil, structural(path, join(path, "shape"), "unrecognized shape: %s", shape.Str)
	}

	err := forEachKey(value, func(key string, field gjson.Result) error {
		switch key {
		case "shape":
			return nil
		case "position":
			return readVec3(field, path, key, pos)
		case "material":
			return readMaterial(field, path, key, mat)
		}
		if handled, err := extra(key, field); handled {
			return err
		}
		return structural(path, join(path, key), "unrecognized object property: %s", key)
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func readMaterial(value gjson.Result, parent, key string, mat *scene.Material) error {
	path := join(parent, key)
	if !value.IsObject() {
		return structural(parent, path, "%s must be of type object", key)
	}
	return forEachKey(value, func(key string, field gjson.Result) error {
		switch key {
		case "color":
			return readVec3(field, path, key, &mat.Color)
		case "checkered":
			return readBool(field, path, key, &mat.Checkered)
		case "diffuse":
			return readBool(field, path, key, &mat.Diffuse)
		case "specular":
			return readBool(field, path, key, &mat.Specular)
		default:
			return structural(path, join(path, key), "unrecognized material property: %s", key)
		}
	})
}

// forEachKey calls fn for each member of an object in document order and
// stops at the first error
func forEachKey(object gjson.Result, fn func(key string, value gjson.Result) error) error {
	var err error
	object.ForEach(func(key, value gjson.Result) bool {
		err = fn(key.Str, value)
		return err == nil
	})
	return err
}

// readArray calls fn for each element of an array of objects
func readArray(value gjson.Result, key string, fn func(elem gjson.Result, path string) error) error {
	if !value.IsArray() {
		return structural("", key, "%s must be an array", key)
	}
	for i, elem := range value.Array() {
		path := fmt.Sprintf("%s[%d]", key, i)
		if !elem.IsObject() {
			return structural("", path, "%s must only contain valid objects", key)
		}
		if err := fn(elem, path); err != nil {
			return err
		}
	}
	return nil
}

func readBool(value gjson.Result, parent, key string, target *bool) error {
	if !value.IsBool() {
		return structural(parent, join(parent, key), "%s must be of type bool", key)
	}
	*target = value.Bool()
	return nil
}

// readUint accepts only non-negative integer literals
func readUint(value gjson.Result, parent, key string, target *uint32) error {
	if value.Type != gjson.Number {
		return structural(parent, join(parent, key), "%s must be of type unsigned", key)
	}
	n, err := strconv.ParseUint(value.Raw, 10, 32)
	if err != nil {
		return structural(parent, join(parent, key), "%s must be of type unsigned", key)
	}
	*target = uint32(n)
	return nil
}

// readNumber accepts any number, integer literals included. The value may
// overflow float32; parameters read this way are range checked afterwards.
func readNumber(value gjson.Result, parent, key string, target *float32) error {
	if value.Type != gjson.Number {
		return structural(parent, join(parent, key), "%s must be of type float", key)
	}
	*target = float32(value.Num)
	return nil
}

// readFloat is readNumber for values with no range check of their own:
// anything float32 cannot hold is rejected here
func readFloat(value gjson.Result, parent, key string, target *float32) error {
	if err := readNumber(value, parent, key, target); err != nil {
		return err
	}
	if !finite(*target) {
		return structural(parent, join(parent, key), "%s must be a finite number", key)
	}
	return nil
}

func readVec3(value gjson.Result, parent, key string, target *core.Vec3) error {
	elems, ok := tuple3(value)
	if !ok {
		return structural(parent, join(parent, key), "%s must be of type vec3", key)
	}
	var v [3]float32
	for i, elem := range elems {
		if elem.Type != gjson.Number {
			return structural(parent, join(parent, key), "%s's components must be numbers", key)
		}
		v[i] = float32(elem.Num)
		if !finite(v[i]) {
			return structural(parent, join(parent, key), "%s's components must be finite numbers", key)
		}
	}
	*target = core.NewVec3(v[0], v[1], v[2])
	return nil
}

func readTextVec3(value gjson.Result, parent, key string, target *scene.TextVec3) error {
	elems, ok := tuple3(value)
	if !ok {
		return structural(parent, join(parent, key), "%s must be of type strvec3", key)
	}
	var v scene.TextVec3
	for i, elem := range elems {
		switch elem.Type {
		case gjson.Number:
			n := float32(elem.Num)
			if !finite(n) {
				return structural(parent, join(parent, key), "%s's components must be finite numbers", key)
			}
			v[i] = scene.Number(n)
		case gjson.String:
			v[i] = scene.Expr(elem.Str)
		default:
			return structural(parent, join(parent, key), "%s's components must be numbers or strings", key)
		}
	}
	*target = v
	return nil
}

func finite(v float32) bool {
	return !math32.IsInf(v, 0) && !math32.IsNaN(v)
}

func tuple3(value gjson.Result) ([]gjson.Result, bool) {
	if !value.IsArray() {
		return nil, false
	}
	elems := value.Array()
	return elems, len(elems) == 3
}

func join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// validateFilePath rejects paths that cannot name a scene document
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	info, err := os.Stat(filepath.Clean(filename))
	if err != nil {
		return fmt.Errorf("failed to open scene file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("scene file %s is a directory", filename)
	}
	return nil
}
