package compiler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/glossy/pkg/glsl"
	"github.com/df07/glossy/pkg/loaders"
	"github.com/df07/glossy/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mirrorScene = `{
	"SS": 2,
	"recursion": 1,
	"lights": [ { "position": [ "sin( global_time )", 5, 0 ] } ],
	"objects": [
		{ "shape": "plane", "material": { "checkered": true } },
		{ "shape": "sphere", "position": [ 0, 1, 5 ], "material": { "specular": true } }
	]
}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCompile(t *testing.T) {
	src, err := Compile(strings.NewReader(mirrorScene))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(src, glsl.Version+"\n"))
	assert.Contains(t, src, "light( vec3( sin( global_time ), 5.0, 0.0 ), vec3( 1.0, 1.0, 1.0 ) )")
	assert.Contains(t, src, "const plane obj0")
	assert.Contains(t, src, "const sphere obj1")
	assert.Contains(t, src, "result / 4.0")

	again, err := CompileBytes([]byte(mirrorScene))
	require.NoError(t, err)
	assert.Equal(t, src, again)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		sentinel error
		message  string
	}{
		{"unknown option", `{"foo": 1}`, loaders.ErrStructural, "unrecognized option: foo"},
		{"fovy too wide", `{"fovy": 200}`, loaders.ErrRange, "fovy must be in (0, 180)"},
		{"fovy zero", `{"fovy": 0}`, loaders.ErrRange, "fovy must be in (0, 180)"},
		{"cube", `{"objects": [{"shape": "cube"}]}`, loaders.ErrStructural, "objects[0]: unrecognized shape: cube"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := CompileBytes([]byte(tt.doc))
			require.Error(t, err)
			assert.Empty(t, src)
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestCompileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirrors.json")
	require.NoError(t, os.WriteFile(path, []byte(mirrorScene), 0644))

	src, err := CompileFile(path)
	require.NoError(t, err)
	expected, err := CompileBytes([]byte(mirrorScene))
	require.NoError(t, err)
	assert.Equal(t, expected, src)

	require.NoError(t, os.WriteFile(path, []byte(`{"SS": 0}`), 0644))
	_, err = CompileFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, loaders.ErrRange))
	assert.Contains(t, err.Error(), path)
}

func TestLoadScene(t *testing.T) {
	s, err := LoadScene(scene.BuiltinSceneInfo())
	require.NoError(t, err)
	assert.Equal(t, CompileScene(scene.NewDefaultScene()), CompileScene(s))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mirrors.json"), []byte(mirrorScene), 0644))
	info, err := scene.FindScene(dir, "mirrors")
	require.NoError(t, err)

	s, err = LoadScene(info)
	require.NoError(t, err)
	assert.Len(t, s.Objects, 2)
}

func TestBundledScenes(t *testing.T) {
	dir := filepath.Join("..", "..", "scenes")
	scenes, err := scene.ListScenes(dir)
	require.NoError(t, err)
	require.NotEmpty(t, scenes)

	for _, info := range scenes {
		t.Run(info.ID, func(t *testing.T) {
			src, err := CompileFile(info.FilePath)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(src, glsl.Version))
		})
	}
}

func TestWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(mirrorScene), 0644))

	results := make(chan Result, 16)
	w := NewWatcher(path, func(r Result) { results <- r }, quietLogger())
	w.SettleDelay = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// a write may be seen half done, so wait for the compilation that
	// matches the final content
	waitFor := func(match func(Result) bool) Result {
		t.Helper()
		for {
			select {
			case r := <-results:
				if match(r) {
					return r
				}
			case <-time.After(5 * time.Second):
				t.Fatal("timed out waiting for compilation")
				return Result{}
			}
		}
	}

	first := waitFor(func(Result) bool { return true })
	require.NoError(t, first.Err)
	assert.Equal(t, w.Path, first.Path)
	assert.Contains(t, first.Source, "const sphere obj1")

	require.NoError(t, os.WriteFile(path, []byte(`{"objects": [{"shape": "cube"}]}`), 0644))
	broken := waitFor(func(r Result) bool {
		return r.Err != nil && strings.Contains(r.Err.Error(), "cube")
	})
	assert.True(t, errors.Is(broken.Err, loaders.ErrStructural))
	assert.Empty(t, broken.Source)

	require.NoError(t, os.WriteFile(path, []byte(`{"objects": [{"shape": "plane"}]}`), 0644))
	fixed := waitFor(func(r Result) bool { return r.Err == nil })
	assert.Contains(t, fixed.Source, "const plane obj0")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing", "scene.json"), nil, quietLogger())
	err := w.Run(context.Background())
	assert.Error(t, err)
}
