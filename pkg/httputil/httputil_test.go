package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/observability"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid scene", errors.New(errors.ErrCodeInvalidScene, "bad"), http.StatusBadRequest},
		{"invalid input wrapped", fmt.Errorf("solve: %w", errors.New(errors.ErrCodeInvalidInput, "bad")), http.StatusBadRequest},
		{"unsupported", errors.New(errors.ErrCodeUnsupported, "png"), http.StatusBadRequest},
		{"binding", errors.New(errors.ErrCodeSelfAnchor, "self"), http.StatusUnprocessableEntity},
		{"layout not found", errors.New(errors.ErrCodeLayoutNotFound, "gone"), http.StatusNotFound},
		{"item not found", errors.New(errors.ErrCodeItemNotFound, "gone"), http.StatusNotFound},
		{"too large", fmt.Errorf("read: %w", &http.MaxBytesError{Limit: 10}), http.StatusRequestEntityTooLarge},
		{"internal", errors.New(errors.ErrCodeInternal, "boom"), http.StatusInternalServerError},
		{"plain", stderrors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("StatusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantBody ErrorBody
	}{
		{
			name:     "client error keeps message",
			err:      errors.New(errors.ErrCodeInvalidRef, "unknown item \"ghost\""),
			wantBody: ErrorBody{Error: "unknown item \"ghost\"", Code: errors.ErrCodeInvalidRef},
		},
		{
			name:     "internal error hides message",
			err:      stderrors.New("disk on fire"),
			wantBody: ErrorBody{Error: "Internal Server Error"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			var got ErrorBody
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			if got != tt.wantBody {
				t.Errorf("body = %+v, want %+v", got, tt.wantBody)
			}
		})
	}
}

type httpRecorder struct {
	observability.NoopHTTPHooks
	requests  []string
	responses []int
}

func (h *httpRecorder) OnRequest(_ context.Context, method, path string) {
	h.requests = append(h.requests, method+" "+path)
}

func (h *httpRecorder) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.responses = append(h.responses, status)
}

func TestMiddleware(t *testing.T) {
	hooks := &httpRecorder{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.InfoLevel})

	handler := Observe(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			WriteError(w, errors.New(errors.ErrCodeLayoutNotFound, "gone"))
			return
		}
		w.Write([]byte("ok"))
	})))

	for _, path := range []string{"/ok", "/missing"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := strings.Join(hooks.requests, ","); got != "GET /ok,GET /missing" {
		t.Errorf("requests = %s", got)
	}
	if len(hooks.responses) != 2 || hooks.responses[0] != http.StatusOK || hooks.responses[1] != http.StatusNotFound {
		t.Errorf("responses = %v, want [200 404]", hooks.responses)
	}
	if !strings.Contains(logs.String(), "status=404") {
		t.Errorf("log missing status: %s", logs.String())
	}
}
