package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/df07/glossy/pkg/compiler"
	"github.com/df07/glossy/pkg/scene"
)

// Live feed message types
const (
	LiveShader  = "shader"
	LiveError   = "error"
	LiveConsole = "console"
)

// LiveMessage is one message of the live feed
type LiveMessage struct {
	Type    string          `json:"type"`
	Source  string          `json:"source,omitempty"`  // LiveShader
	Message string          `json:"message,omitempty"` // LiveError
	Kind    string          `json:"kind,omitempty"`    // LiveError from a validation failure
	Field   string          `json:"field,omitempty"`   // LiveError from a validation failure
	Console *ConsoleMessage `json:"console,omitempty"` // LiveConsole
}

const liveWriteTimeout = 10 * time.Second

func resultMessage(res compiler.Result) LiveMessage {
	if res.Err != nil {
		e := errorResponse(res.Err)
		return LiveMessage{Type: LiveError, Message: e.Error, Kind: e.Kind, Field: e.Field}
	}
	return LiveMessage{Type: LiveShader, Source: res.Source}
}

// handleLive streams the compiled source of a scene over a WebSocket. A scene
// document is watched and every change is recompiled and pushed; the
// built-in scene is sent once.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	info, err := s.findScene(r.URL.Query().Get("scene"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("live feed upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client only ever closes the connection
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	results := make(chan compiler.Result, 4)
	console := make(chan ConsoleMessage, 32)
	logger := slog.New(NewConsoleHandler(s.logger.Handler(), console)).With("scene", info.ID)
	logger.Info("live feed opened")

	if info.Type == scene.SceneTypeBuiltin {
		results <- compiler.Result{Source: compiler.CompileScene(scene.NewDefaultScene())}
	} else {
		watcher := compiler.NewWatcher(info.FilePath, func(res compiler.Result) {
			select {
			case results <- res:
			case <-ctx.Done():
			}
		}, logger)
		watcher.SettleDelay = s.settleDelay
		go func() {
			if err := watcher.Run(ctx); err != nil {
				select {
				case results <- compiler.Result{Path: info.FilePath, Err: err}:
				case <-ctx.Done():
				}
			}
		}()
	}

	for {
		var msg LiveMessage
		// Console messages go first so progress logged before a
		// compilation finished is shown before its result
		select {
		case c := <-console:
			msg = LiveMessage{Type: LiveConsole, Console: &c}
		default:
			select {
			case <-ctx.Done():
				s.logger.Info("live feed closed", "scene", info.ID)
				return
			case res := <-results:
				msg = resultMessage(res)
			case c := <-console:
				msg = LiveMessage{Type: LiveConsole, Console: &c}
			}
		}
		conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			s.logger.Debug("live feed write failed", "scene", info.ID, "error", err)
			return
		}
	}
}
