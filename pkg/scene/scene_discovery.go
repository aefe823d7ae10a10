package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultSceneID identifies the built-in scene
const DefaultSceneID = "default"

// Scene types
const (
	SceneTypeBuiltin  = "builtin"
	SceneTypeDocument = "document"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Type        string `json:"type"`        // "builtin" or "document"
	FilePath    string `json:"filePath"`    // Path to the scene document (document type only)
}

// BuiltinSceneInfo describes the scene returned by NewDefaultScene
func BuiltinSceneInfo() SceneInfo {
	return SceneInfo{
		ID:          DefaultSceneID,
		Name:        "Default Scene",
		DisplayName: "Default Scene",
		Type:        SceneTypeBuiltin,
	}
}

// FindScenesDir returns the first of the candidate directories that exists,
// or "" if none does
func FindScenesDir(candidates ...string) string {
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListScenes scans dir for *.json scene documents. A missing directory
// yields an empty list.
func ListScenes(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		scenes = append(scenes, documentSceneInfo(filePath))
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ListAllScenes returns the built-in scene followed by the documents in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	documents, err := ListScenes(dir)
	if err != nil {
		return nil, err
	}
	return append([]SceneInfo{BuiltinSceneInfo()}, documents...), nil
}

// FindScene looks a scene up by ID among the built-in scene and the
// documents in dir
func FindScene(dir, id string) (SceneInfo, error) {
	scenes, err := ListAllScenes(dir)
	if err != nil {
		return SceneInfo{}, err
	}
	for _, info := range scenes {
		if info.ID == id {
			return info, nil
		}
	}
	return SceneInfo{}, fmt.Errorf("unknown scene: %s", id)
}

func documentSceneInfo(filePath string) SceneInfo {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))
	return SceneInfo{
		ID:          nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Type:        SceneTypeDocument,
		FilePath:    filePath,
	}
}

// titleCase converts a filename-style string to title case
// e.g., "moving-light" -> "Moving Light"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
