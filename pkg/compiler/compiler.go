// Package compiler turns scene documents into fragment shader source and
// keeps the source up to date while a document is edited.
package compiler

import (
	"fmt"
	"io"

	"github.com/df07/glossy/pkg/glsl"
	"github.com/df07/glossy/pkg/loaders"
	"github.com/df07/glossy/pkg/scene"
)

// Compile parses and validates a scene document and returns its shader
// source. Validation failures are *loaders.ValidationError; no source is
// returned with an error.
func Compile(r io.Reader) (string, error) {
	s, err := loaders.ParseScene(r)
	if err != nil {
		return "", err
	}
	return glsl.Generate(s), nil
}

// CompileBytes compiles an in-memory scene document
func CompileBytes(data []byte) (string, error) {
	s, err := loaders.ParseSceneBytes(data)
	if err != nil {
		return "", err
	}
	return glsl.Generate(s), nil
}

// CompileFile compiles the scene document at path
func CompileFile(path string) (string, error) {
	s, err := loaders.LoadScene(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return glsl.Generate(s), nil
}

// CompileScene generates the source of an already validated scene
func CompileScene(s *scene.Scene) string {
	return glsl.Generate(s)
}

// LoadScene returns the scene a discovered entry refers to: the built-in
// default scene or a parsed document
func LoadScene(info scene.SceneInfo) (*scene.Scene, error) {
	if info.Type == scene.SceneTypeBuiltin {
		return scene.NewDefaultScene(), nil
	}
	s, err := loaders.LoadScene(info.FilePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", info.FilePath, err)
	}
	return s, nil
}
