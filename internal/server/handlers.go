package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/tikzlayout/pkg/buildinfo"
	"github.com/matzehuels/tikzlayout/pkg/cache"
	errs "github.com/matzehuels/tikzlayout/pkg/errors"
	"github.com/matzehuels/tikzlayout/pkg/pipeline"
	"github.com/matzehuels/tikzlayout/pkg/scene"
)

// Response headers set on rendered artifacts.
const (
	RenderIDHeader  = "X-Render-ID"
	CacheHitHeader  = "X-Cache"
	cacheHitValue   = "HIT"
	cacheMissValue  = "MISS"
	renderURLPrefix = "/renders/"
)

type healthResponse struct {
	Status  string         `json:"status"`
	Version buildinfo.Info `json:"version"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// storedRender is the cache entry behind /renders/{id}.
type storedRender struct {
	Format string `json:"format"`
	Data   []byte `json:"data"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Get()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = pipeline.DefaultFormat
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error:     fmt.Sprintf("scene exceeds %d bytes", tooLarge.Limit),
				Code:      string(errs.ErrCodeInvalidInput),
				RequestID: RequestIDFromContext(ctx),
			})
			return
		}
		writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	if len(body) == 0 {
		writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "empty request body"))
		return
	}

	result, err := s.runner.Execute(ctx, body, pipeline.Options{
		Formats:      []string{format},
		Engine:       s.opts.Engine,
		SceneFormat:  sceneFormat(r),
		BaseDir:      s.opts.BaseDir,
		RelativeOnly: true,
		Restricted:   true,
		ProbeImages:  s.opts.ProbeImages,
	})
	if err != nil {
		s.logger.Warn("render failed", "request_id", RequestIDFromContext(ctx), "err", err)
		writeError(w, r, err)
		return
	}
	data := result.Artifacts[format]

	id := uuid.NewString()
	entry, err := json.Marshal(storedRender{Format: format, Data: data})
	if err == nil {
		err = s.runner.Cache.Set(ctx, s.runner.Keyer.RenderKey(id), entry, cache.TTLRender)
	}
	if err != nil {
		// The artifact is still returned; only the lookup by id is lost.
		s.logger.Warn("store render failed", "id", id, "err", err)
	} else {
		w.Header().Set(RenderIDHeader, id)
		w.Header().Set("Location", renderURLPrefix+id)
	}

	if result.CacheInfo.RenderHit {
		w.Header().Set(CacheHitHeader, cacheHitValue)
	} else {
		w.Header().Set(CacheHitHeader, cacheMissValue)
	}
	writeArtifact(w, http.StatusOK, format, data)
}

func (s *Server) handleGetRender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "invalid render id %q", id))
		return
	}
	data, ok, err := s.runner.Cache.Get(r.Context(), s.runner.Keyer.RenderKey(id))
	if err != nil {
		writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "read render %s", id))
		return
	}
	if !ok {
		writeError(w, r, errNotFound("render %s not found or expired", id))
		return
	}
	var entry storedRender
	if err := json.Unmarshal(data, &entry); err != nil {
		writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "decode render %s", id))
		return
	}
	w.Header().Set(RenderIDHeader, id)
	writeArtifact(w, http.StatusOK, entry.Format, entry.Data)
}

// sceneFormat picks the scene encoding from ?scene= or the content type;
// an empty result lets the pipeline sniff the body.
func sceneFormat(r *http.Request) scene.Format {
	switch strings.ToLower(r.URL.Query().Get("scene")) {
	case "json":
		return scene.FormatJSON
	case "toml":
		return scene.FormatTOML
	}
	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "application/json"):
		return scene.FormatJSON
	case strings.HasPrefix(ct, "application/toml"):
		return scene.FormatTOML
	}
	return ""
}

// =============================================================================
// Responses
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeArtifact(w http.ResponseWriter, status int, format string, data []byte) {
	ct, ok := pipeline.ContentTypes[format]
	if !ok {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeJSON(w, statusFor(err), errorResponse{
		Error:     errs.UserMessage(err),
		Code:      string(codeOf(err)),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func errNotFound(format string, args ...any) error {
	return errs.New(errs.ErrCodeNotFound, format, args...)
}

func codeOf(err error) errs.Code {
	if code := errs.GetCode(err); code != "" {
		return code
	}
	return errs.ErrCodeInternal
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch codeOf(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidScene, errs.ErrCodeInvalidFormat,
		errs.ErrCodeInvalidPath, errs.ErrCodeInvalidColor, errs.ErrCodeFileNotFound:
		return http.StatusBadRequest
	case errs.ErrCodeEmptyComposite, errs.ErrCodeUnsupportedShape, errs.ErrCodeDegenerateGeometry:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeNotFound:
		return http.StatusNotFound
	case errs.ErrCodeRenderFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
