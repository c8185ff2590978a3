package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/curveplot/pkg/buildinfo"
	cperrors "github.com/matzehuels/curveplot/pkg/errors"
	"github.com/matzehuels/curveplot/pkg/pipeline"
	"github.com/matzehuels/curveplot/pkg/scene"
)

// RenderRequest is the body of POST /render.
type RenderRequest struct {
	Scene     string       `json:"scene"`
	Format    scene.Format `json:"format"` // scene encoding, yaml when empty
	Param     *float64     `json:"param,omitempty"`
	Formats   []string     `json:"formats,omitempty"`
	TextWidth int          `json:"text_width,omitempty"`
	Policy    string       `json:"policy,omitempty"`
	Refresh   bool         `json:"refresh,omitempty"`
}

// RenderResponse is the body of a successful POST /render.
type RenderResponse struct {
	Name      string            `json:"name"`
	SceneHash string            `json:"scene_hash"`
	Param     float64           `json:"param"`
	Cached    bool              `json:"cached"`
	Artifacts map[string][]byte `json:"artifacts"`
	Drawn     []DrawnCurve      `json:"drawn,omitempty"`
	Skipped   []SkippedCurve    `json:"skipped,omitempty"`
	ElapsedMS int64             `json:"elapsed_ms"`
}

// DrawnCurve reports one drawn curve.
type DrawnCurve struct {
	Name      string `json:"name"`
	Painted   int    `json:"painted"`
	Undefined int    `json:"undefined"`
}

// SkippedCurve reports one curve skipped under the skip policy.
type SkippedCurve struct {
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatRGB:  "application/octet-stream",
	pipeline.FormatText: "text/plain; charset=utf-8",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		s.writeError(w, r, decodeStatus(err), err)
		return
	}
	res, elapsed, err := s.render(r, req)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	resp := RenderResponse{
		Name:      res.Scene.Name,
		SceneHash: res.SceneHash,
		Param:     res.Param,
		Cached:    res.CacheInfo.RenderHit,
		Artifacts: res.Artifacts,
		ElapsedMS: elapsed.Milliseconds(),
	}
	if res.Report != nil {
		for _, d := range res.Report.Drawn {
			resp.Drawn = append(resp.Drawn, DrawnCurve{Name: d.Name, Painted: d.Stats.Painted, Undefined: d.Stats.Undefined})
		}
		for _, sk := range res.Report.Skipped {
			resp.Skipped = append(resp.Skipped, SkippedCurve{
				Name:    sk.Name,
				Code:    string(cperrors.GetCode(sk.Err)),
				Message: cperrors.UserMessage(sk.Err),
			})
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRenderRaw(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, http.StatusNotFound, err)
		return
	}
	req, err := decodeRequest(r)
	if err != nil {
		s.writeError(w, r, decodeStatus(err), err)
		return
	}
	req.Formats = []string{format}
	res, _, err := s.render(r, req)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Scene-Hash", res.SceneHash)
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) render(r *http.Request, req RenderRequest) (*pipeline.Result, time.Duration, error) {
	start := time.Now()
	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Source:    []byte(req.Scene),
		Format:    req.Format,
		Param:     req.Param,
		Formats:   req.Formats,
		TextWidth: req.TextWidth,
		Policy:    req.Policy,
		Refresh:   req.Refresh,
		Logger:    s.logger.With("request_id", RequestID(r.Context())),
	})
	return res, time.Since(start), err
}

func decodeRequest(r *http.Request) (RenderRequest, error) {
	var req RenderRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("decode request: %w", err)
	}
	if req.Scene == "" {
		return req, fmt.Errorf("scene is required")
	}
	if req.Format == "" {
		req.Format = scene.FormatYAML
	}
	return req, nil
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch cperrors.GetCode(err) {
	case cperrors.ErrCodeInvalidConfig, cperrors.ErrCodeInvalidFormat, cperrors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case cperrors.ErrCodeGeometry, cperrors.ErrCodeUnsupportedVariant:
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, pipeline.ErrInvalidOptions) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func decodeStatus(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := RequestID(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", id, "err", err)
	} else {
		s.logger.Debug("request rejected", "id", id, "status", status, "err", err)
	}
	writeJSON(w, status, ErrorResponse{
		Error:     err.Error(),
		Code:      string(cperrors.GetCode(err)),
		RequestID: id,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
