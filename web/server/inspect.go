package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/df07/glossy/pkg/compiler"
	"github.com/df07/glossy/pkg/core"
	"github.com/df07/glossy/pkg/glsl"
	"github.com/df07/glossy/pkg/scene"
)

// maxViewportSize bounds width and height of an inspect request
const maxViewportSize = 8192

// InspectRequest asks which object is visible at a pixel. Yaw and pitch are
// in radians. Pixel rows count down from the top, as in the browser.
type InspectRequest struct {
	Scene    string      `json:"scene"`
	Position *[3]float32 `json:"position"` // defaults to the starting camera position
	Yaw      float32     `json:"yaw"`
	Pitch    float32     `json:"pitch"`
	X        int         `json:"x"`
	Y        int         `json:"y"`
	Width    int         `json:"width"`
	Height   int         `json:"height"`
}

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit        bool           `json:"hit"`
	Index      int            `json:"index"`          // position in the scene's objects, -1 on a miss
	Name       string         `json:"name,omitempty"` // constant name in the generated shader
	Shape      string         `json:"shape,omitempty"`
	Distance   float32        `json:"distance"`
	Point      [3]float32     `json:"point"`
	Normal     [3]float32     `json:"normal"`
	Material   *MaterialInfo  `json:"material,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// MaterialInfo describes the material of an inspected object
type MaterialInfo struct {
	Color     [3]float32 `json:"color"`
	Hex       string     `json:"hex"`
	Flags     []string   `json:"flags"`
	Checkered bool       `json:"checkered"`
	Diffuse   bool       `json:"diffuse"`
	Specular  bool       `json:"specular"`
}

// extractMaterialInfo extracts material information for display
func extractMaterialInfo(mat scene.Material) *MaterialInfo {
	flags := mat.Flags()
	if flags == nil {
		flags = []string{}
	}
	return &MaterialInfo{
		Color:     mat.Color.Array(),
		Hex:       hexColor(mat.Color),
		Flags:     flags,
		Checkered: mat.Checkered,
		Diffuse:   mat.Diffuse,
		Specular:  mat.Specular,
	}
}

// extractGeometryInfo extracts the shape specific properties
func extractGeometryInfo(obj scene.Object) map[string]any {
	properties := make(map[string]any)
	switch geom := obj.(type) {
	case *scene.Sphere:
		properties["position"] = geom.Position.Array()
		properties["radius"] = geom.Radius
	case *scene.Plane:
		properties["position"] = geom.Position.Array()
		properties["normal"] = geom.Normal.Array()
	}
	return properties
}

func hexColor(c core.Vec3) string {
	channel := func(v float32) int {
		return int(core.Clamp(0, 1, v) * 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.X), channel(c.Y), channel(c.Z))
}

// inspectPixel casts the ray the generated shader would cast through the
// center of a pixel and reports the nearest object
func inspectPixel(sceneObj *scene.Scene, req InspectRequest) InspectResponse {
	pos := scene.DefaultCameraPosition
	if req.Position != nil {
		pos = core.NewVec3(req.Position[0], req.Position[1], req.Position[2])
	}
	basis := core.CameraBasis(req.Yaw, req.Pitch)
	resolution := core.NewVec2(float32(req.Width), float32(req.Height))
	// gl_FragCoord has its origin at the bottom left
	screen := core.NewVec2(float32(req.X)+0.5, float32(req.Height-req.Y)-0.5)

	hit, ok := sceneObj.Nearest(sceneObj.ViewRay(pos, basis, screen, resolution))
	if !ok {
		return InspectResponse{Hit: false, Index: -1}
	}
	return InspectResponse{
		Hit:        true,
		Index:      hit.Index,
		Name:       glsl.ObjectName(hit.Index),
		Shape:      string(hit.Object.Type()),
		Distance:   hit.Distance,
		Point:      hit.Point.Array(),
		Normal:     hit.Normal.Array(),
		Material:   extractMaterialInfo(hit.Object.Surface()),
		Properties: extractGeometryInfo(hit.Object),
	}
}

func validateInspectRequest(req InspectRequest) error {
	if req.Width < 1 || req.Width > maxViewportSize || req.Height < 1 || req.Height > maxViewportSize {
		return fmt.Errorf("width and height must be between 1 and %d, got: %dx%d", maxViewportSize, req.Width, req.Height)
	}
	if req.X < 0 || req.X >= req.Width || req.Y < 0 || req.Y >= req.Height {
		return fmt.Errorf("pixel coordinates out of bounds")
	}
	return nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	var req InspectRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentSize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid inspect request: %w", err))
		return
	}
	if err := validateInspectRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	info, err := s.findScene(req.Scene)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	sceneObj, err := compiler.LoadScene(info)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, req))
}
