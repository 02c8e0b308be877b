package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Image size limits accepted by the render and inspect endpoints
const (
	minImageSize = 1
	maxImageSize = 2000
)

// Server handles web requests for the raytracer
type Server struct {
	config *config.Config
	logger *slog.Logger
	router *mux.Router
}

// NewServer creates a new web server. A nil logger uses slog.Default.
func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{config: cfg, logger: logger}
	s.router = s.routes()
	return s
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string         `json:"scene"`    // Built-in scene name or "file:NAME"
	Width    int            `json:"width"`    // Image width, 0 keeps the scene's width
	Height   int            `json:"height"`   // Image height, 0 keeps the scene's height
	MaxDepth int            `json:"maxDepth"` // Recursion depth, -1 keeps the scene's depth
	Format   loaders.Format `json:"format"`
}

// Stats represents render statistics
type Stats struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	TotalPixels     int     `json:"totalPixels"`
	HitPixels       int     `json:"hitPixels"`
	MissPixels      int     `json:"missPixels"`
	NumWorkers      int     `json:"numWorkers"`
	NumTasks        int     `json:"numTasks"`
	MeanLuminance   float64 `json:"meanLuminance"`
	LuminanceStdDev float64 `json:"luminanceStdDev"`
	ElapsedMs       int64   `json:"elapsedMs"`
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/scenes", s.handleScenes).Methods("GET")
	api.HandleFunc("/render", s.handleRender).Methods("GET")
	api.HandleFunc("/render/stats", s.handleRenderStats).Methods("GET")
	api.HandleFunc("/inspect", s.handleInspect).Methods("GET")

	r.Use(s.logRequests)
	return r
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.logger.Info("starting web server", "addr", "http://localhost"+addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and the scene files in the scenes directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.config.ScenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleRender renders a scene and returns the encoded image. Render
// statistics travel in X-Render-* headers.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, ok := s.prepareRender(w, r)
	if !ok {
		return
	}

	pixels, stats, err := s.render(sceneObj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Render error: "+err.Error())
		return
	}

	img, err := renderer.BuildImage(sceneObj.Width, sceneObj.Height, pixels)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Image error: "+err.Error())
		return
	}

	var buf bytes.Buffer
	if err := loaders.Encode(&buf, loaders.Opaque(img), req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, "Encode error: "+err.Error())
		return
	}

	h := w.Header()
	h.Set("Content-Type", req.Format.ContentType())
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("X-Render-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	h.Set("X-Render-Miss-Pixels", strconv.Itoa(stats.MissPixels))
	h.Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStats renders a scene and returns only its statistics
func (s *Server) handleRenderStats(w http.ResponseWriter, r *http.Request) {
	_, sceneObj, ok := s.prepareRender(w, r)
	if !ok {
		return
	}

	_, stats, err := s.render(sceneObj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Render error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, Stats{
		Width:           stats.Width,
		Height:          stats.Height,
		TotalPixels:     stats.TotalPixels,
		HitPixels:       stats.HitPixels,
		MissPixels:      stats.MissPixels,
		NumWorkers:      stats.NumWorkers,
		NumTasks:        stats.NumTasks,
		MeanLuminance:   stats.MeanLuminance,
		LuminanceStdDev: stats.LuminanceStdDev,
		ElapsedMs:       stats.Duration.Milliseconds(),
	})
}

// prepareRender parses the request and builds its scene, writing the error
// response itself when either fails
func (s *Server) prepareRender(w http.ResponseWriter, r *http.Request) (*RenderRequest, *scene.Scene, bool) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return nil, nil, false
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err.Error())
		return nil, nil, false
	}
	return req, sceneObj, true
}

// sceneErrorStatus maps a createScene failure to a response code
func sceneErrorStatus(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func (s *Server) render(sceneObj *scene.Scene) ([]byte, renderer.RenderStats, error) {
	raytracer := renderer.NewRaytracer(sceneObj, renderer.Config{
		NumWorkers:  s.config.Workers,
		RowsPerTask: s.config.RowsPerTask,
	})
	return raytracer.Render()
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default"}

	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", -1, 0, renderer.HardMaxDepth); err != nil {
		return nil, err
	}

	req.Format = s.config.ImageFormat()
	if format := query.Get("format"); format != "" {
		if req.Format, err = loaders.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene and applies the request's overrides.
// Scene files are only looked up inside the configured scenes directory.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	var sceneObj *scene.Scene

	if name, isFile := strings.CutPrefix(req.Scene, "file:"); isFile {
		if name == "" || name != filepath.Base(name) {
			return nil, fmt.Errorf("invalid scene file name %q", name)
		}
		path, err := s.findSceneFile(name)
		if err != nil {
			return nil, err
		}
		if sceneObj, err = loaders.LoadScene(path); err != nil {
			return nil, err
		}
	} else {
		var err error
		if sceneObj, err = scene.Create(req.Scene); err != nil {
			return nil, err
		}
	}

	if req.Width > 0 {
		sceneObj.Width = req.Width
	}
	if req.Height > 0 {
		sceneObj.Height = req.Height
	}
	if req.MaxDepth >= 0 {
		sceneObj.MaxDepth = req.MaxDepth
	}

	// Scene files set their own size, so check it after the overrides
	if sceneObj.Width > maxImageSize || sceneObj.Height > maxImageSize {
		return nil, fmt.Errorf("%w: image size %dx%d exceeds the %dx%d limit",
			scene.ErrInvalidScene, sceneObj.Width, sceneObj.Height, maxImageSize, maxImageSize)
	}
	return sceneObj, nil
}

func (s *Server) findSceneFile(name string) (string, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(s.config.ScenesDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: no scene file %q in %s", scene.ErrUnknownScene, name, s.config.ScenesDir)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
