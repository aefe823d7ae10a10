package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/df07/glossy/pkg/compiler"
	"github.com/df07/glossy/pkg/loaders"
	"github.com/df07/glossy/pkg/scene"
	"github.com/gorilla/websocket"
)

// maxDocumentSize bounds the scene documents accepted over HTTP
const maxDocumentSize = 1 << 20

// Server handles web requests for the shader compiler
type Server struct {
	port      int
	scenesDir string
	logger    *slog.Logger
	upgrader  websocket.Upgrader

	// settleDelay is passed to the live feed's watchers
	settleDelay time.Duration
}

// NewServer creates a new web server. scenesDir may be empty, in which case
// only the built-in scene is available.
func NewServer(port int, scenesDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		port:        port,
		scenesDir:   scenesDir,
		logger:      logger,
		settleDelay: compiler.DefaultSettleDelay,
	}
}

// ErrorResponse is the body of every failed API request. Kind and Field are
// set when a scene document failed validation.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`  // "structural" or "range"
	Field string `json:"field,omitempty"` // e.g. "objects[0].shape"
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/compile", s.handleCompile)
	mux.HandleFunc("GET /api/scenes", s.handleScenes)
	mux.HandleFunc("GET /api/shader", s.handleShader)
	mux.HandleFunc("POST /api/inspect", s.handleInspect)
	mux.HandleFunc("GET /api/live", s.handleLive)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting web server", "url", fmt.Sprintf("http://localhost%s", addr), "scenes", s.scenesDir)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCompile compiles the scene document in the request body
func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	source, err := compiler.Compile(http.MaxBytesReader(w, r.Body, maxDocumentSize))
	if err != nil {
		s.logger.Debug("compile request rejected", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeSource(w, source)
}

// handleScenes lists the built-in scene and the documents on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleShader compiles a discovered scene
func (s *Server) handleShader(w http.ResponseWriter, r *http.Request) {
	info, err := s.findScene(r.URL.Query().Get("scene"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	sceneObj, err := compiler.LoadScene(info)
	if err != nil {
		s.logger.Warn("scene failed to compile", "scene", info.ID, "error", err)
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeSource(w, compiler.CompileScene(sceneObj))
}

// findScene resolves a scene ID, defaulting to the built-in scene
func (s *Server) findScene(id string) (scene.SceneInfo, error) {
	if id == "" {
		id = scene.DefaultSceneID
	}
	return scene.FindScene(s.scenesDir, id)
}

func writeSource(w http.ResponseWriter, source string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(source))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError reports err, with its kind and field when it is a validation
// error
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse(err))
}

func errorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}
	var verr *loaders.ValidationError
	if errors.As(err, &verr) {
		resp.Kind = verr.Kind.String()
		resp.Field = verr.Field
	}
	return resp
}
