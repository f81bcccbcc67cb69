package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/evermake/microgames/canvas"
	"github.com/evermake/microgames/config"
	"github.com/evermake/microgames/game"
	"github.com/evermake/microgames/input"
)

func newTestRouter(t *testing.T) (*gin.Engine, *game.Engine, Deps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	left, right := input.NewSlider(), input.NewSlider()
	engine, err := game.NewEngine(game.Options{
		BallMaxSpeed:   4,
		PaddleMaxSpeed: 5,
		PaddleWidth:    10,
		PaddleHeight:   60,
		BallRadius:     8,
		Surface:        canvas.New(800, 400),
		LeftInput:      left,
		RightInput:     right,
		Rand:           rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(engine.Pause)

	deps := Deps{Engine: engine, Left: left, Right: right}
	router := gin.New()
	SetupRoutes(router, deps, &config.Config{Environment: "test"})
	return router, engine, deps
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/api/v1/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestGetGame(t *testing.T) {
	router, engine, _ := newTestRouter(t)
	engine.Reset()

	w := do(router, http.MethodGet, "/api/v1/game", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var snap game.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.State != game.StatePaused || snap.Ball.X != 400 || snap.Width != 800 || !snap.Attached {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestControlRoutes(t *testing.T) {
	router, engine, _ := newTestRouter(t)
	engine.Reset()

	tests := []struct {
		path string
		want game.State
	}{
		{"/api/v1/game/resume", game.StatePlaying},
		{"/api/v1/game/pause", game.StatePaused},
		{"/api/v1/game/toggle", game.StatePlaying},
		{"/api/v1/game/reset", game.StatePaused},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(router, http.MethodPost, tt.path, "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}

			var body struct {
				State game.State `json:"state"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.State != tt.want {
				t.Errorf("state = %s, want %s", body.State, tt.want)
			}
		})
	}
}

func TestSetSpeed(t *testing.T) {
	router, _, deps := newTestRouter(t)

	tests := []struct {
		name      string
		side      string
		body      string
		code      int
		wantLeft  float64
		wantRight float64
	}{
		{"left", "left", `{"percent": 0.5}`, http.StatusOK, 0.5, 0},
		{"right clamped", "right", `{"percent": -3}`, http.StatusOK, 0.5, -1},
		{"zero is allowed", "left", `{"percent": 0}`, http.StatusOK, 0, -1},
		{"unknown side", "top", `{"percent": 1}`, http.StatusBadRequest, 0, -1},
		{"missing percent", "left", `{}`, http.StatusBadRequest, 0, -1},
		{"not a number", "right", `{"percent": "fast"}`, http.StatusBadRequest, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPut, "/api/v1/game/speed/"+tt.side, tt.body)
			if w.Code != tt.code {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.code, w.Body.String())
			}
			if got := deps.Left.SpeedPercent(); got != tt.wantLeft {
				t.Errorf("left = %v, want %v", got, tt.wantLeft)
			}
			if got := deps.Right.SpeedPercent(); got != tt.wantRight {
				t.Errorf("right = %v, want %v", got, tt.wantRight)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := do(router, http.MethodOptions, "/api/v1/game/pause", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
