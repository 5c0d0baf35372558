package server

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/anchorage/pkg/buildinfo"
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/httputil"
	"github.com/matzehuels/anchorage/pkg/pipeline"
	"github.com/matzehuels/anchorage/pkg/scene"
	"github.com/matzehuels/anchorage/pkg/store"
)

// textFormats are the render formats the API embeds in responses.
var textFormats = map[string]bool{
	pipeline.FormatSVG:   true,
	pipeline.FormatText:  true,
	pipeline.FormatDOT:   true,
	pipeline.FormatGraph: true,
}

// SolveResponse is the body of a successful POST /v1/solve.
type SolveResponse struct {
	ID        string            `json:"id,omitempty"`
	SceneHash string            `json:"scene_hash"`
	Snapshot  scene.Snapshot    `json:"snapshot"`
	Bindings  []scene.Binding   `json:"bindings"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
	Cached    bool              `json:"cached"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
	Store  bool           `json:"store"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Build:  buildinfo.Get(),
		Store:  s.store != nil,
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if len(data) == 0 {
		httputil.WriteError(w, errors.New(errors.ErrCodeInvalidInput, "empty request body"))
		return
	}

	opts, save, err := solveOptions(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if save && s.store == nil {
		httputil.WriteError(w, errors.New(errors.ErrCodeUnsupported, "layout storage is not configured"))
		return
	}
	opts.Scene = data
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp := SolveResponse{
		SceneHash: result.SceneHash,
		Snapshot:  result.Solved.Snapshot,
		Bindings:  result.Solved.Bindings,
		Cached:    result.CacheInfo.SolveHit,
	}
	if resp.Bindings == nil {
		resp.Bindings = []scene.Binding{}
	}
	for format, artifact := range result.Artifacts {
		if format == pipeline.FormatJSON {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string]string)
		}
		resp.Artifacts[format] = string(artifact)
	}

	status := http.StatusOK
	if save {
		rec := store.NewRecord(resp.Snapshot.Name, result.SceneHash, resp.Snapshot, resp.Bindings)
		if err := s.store.Save(r.Context(), rec); err != nil {
			httputil.WriteError(w, err)
			return
		}
		resp.ID = rec.ID
		status = http.StatusCreated
		w.Header().Set("Location", "/v1/layouts/"+rec.ID)
	}
	httputil.WriteJSON(w, status, resp)
}

// solveOptions reads the query string and Content-Type into pipeline
// options. It also reports whether the layout should be stored.
func solveOptions(r *http.Request) (pipeline.Options, bool, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format:  q.Get("format"),
		Formats: []string{pipeline.FormatJSON},
	}
	if opts.Format == "" {
		opts.Format = formatFromContentType(r.Header.Get("Content-Type"))
	}

	var err error
	if opts.Strict, err = boolParam(q.Get("strict")); err != nil {
		return opts, false, err
	}
	if opts.Steps, err = boolParam(q.Get("steps")); err != nil {
		return opts, false, err
	}
	save, err := boolParam(q.Get("store"))
	if err != nil {
		return opts, false, err
	}

	if raw := q.Get("formats"); raw != "" {
		for _, f := range strings.Split(raw, ",") {
			f = strings.ToLower(strings.TrimSpace(f))
			if !textFormats[f] {
				return opts, false, errors.New(errors.ErrCodeInvalidFormat, "format %q is not available over the API", f)
			}
			opts.Formats = append(opts.Formats, f)
		}
	}
	return opts, save, nil
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid boolean %q", v)
	}
	return b, nil
}

func formatFromContentType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	switch mt {
	case "application/json":
		return scene.FormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml":
		return scene.FormatYAML
	case "application/toml", "text/toml":
		return scene.FormatTOML
	}
	return ""
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		httputil.WriteError(w, errors.New(errors.ErrCodeLayoutNotFound, "layout storage is not configured"))
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		httputil.WriteError(w, errors.New(errors.ErrCodeLayoutNotFound, "layout storage is not configured"))
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
