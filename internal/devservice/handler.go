package devservice

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"safesurf/internal/orchestrator"
	"safesurf/pkg/logger"
	"safesurf/pkg/serrors"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/jx"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	statusSuccess = "SUCCESS"
	statusError   = "ERROR"

	msgNoURL = "No URL provided"

	// maxBodyBytes bounds request bodies; the service only ever receives a
	// handful of short string fields.
	maxBodyBytes = 64 << 10
)

// Report is one phishing report received on /update-db.
type Report struct {
	Site       string
	Status     string
	ReceivedAt time.Time
}

// Handler serves the analysis service routes from fixtures.
type Handler struct {
	fixtures Fixtures
	latency  time.Duration
	clock    clockwork.Clock

	mu      sync.Mutex
	reports []Report
}

// NewHandler creates a Handler answering from fixtures. Every analysis and
// source response is delayed by latency. A nil clock uses the real one.
func NewHandler(fixtures Fixtures, latency time.Duration, clock clockwork.Clock) *Handler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Handler{fixtures: fixtures, latency: latency, clock: clock}
}

// Register mounts the service routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /{$}", h.analyze)
	mux.HandleFunc("POST /source-code", h.sourceCode)
	mux.HandleFunc("POST /update-db", h.updateDB)
}

// Reports returns a copy of the reports received so far.
func (h *Handler) Reports() []Report {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]Report(nil), h.reports...)
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fields, err := readFields(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	target := fields["url"]
	if target == "" {
		writeError(ctx, w, http.StatusBadRequest, msgNoURL)
		return
	}

	host, err := orchestrator.Site(target)
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, serrors.MessageOf(err))
		return
	}
	if !h.wait(ctx) {
		return
	}

	output, ok := h.fixtures.Lookup(host)
	if !ok {
		writeError(ctx, w, http.StatusInternalServerError, fmt.Sprintf("no fixture for %s", host))
		return
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("status")
	e.Str(statusSuccess)
	e.FieldStart("output")
	e.Raw(output)
	e.ObjEnd()

	writeJSON(ctx, w, http.StatusOK, e.Bytes())
}

func (h *Handler) sourceCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fields, err := readFields(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	// the client sends urlSC; older callers send url
	target := fields["urlSC"]
	if target == "" {
		target = fields["url"]
	}
	if target == "" {
		writeError(ctx, w, http.StatusBadRequest, msgNoURL)
		return
	}

	host, err := orchestrator.Site(target)
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, serrors.MessageOf(err))
		return
	}
	if !h.wait(ctx) {
		return
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("status")
	e.Str(statusSuccess)
	e.FieldStart("formatted_html")
	e.Str(samplePage(target, host))
	e.ObjEnd()

	writeJSON(ctx, w, http.StatusOK, e.Bytes())
}

func (h *Handler) updateDB(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	fields, err := readFields(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	site := strings.TrimSpace(fields["site"])
	if site == "" {
		writeError(ctx, w, http.StatusBadRequest, "No site provided")
		return
	}

	h.mu.Lock()
	h.reports = append(h.reports, Report{Site: site, Status: fields["status"], ReceivedAt: h.clock.Now()})
	h.mu.Unlock()

	logger.Info(ctx, "phishing report recorded", zap.String("site", site), zap.String("status", fields["status"]))

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("status")
	e.Str(statusSuccess)
	e.FieldStart("msg")
	e.Str("Report recorded for " + site)
	e.ObjEnd()

	writeJSON(ctx, w, http.StatusOK, e.Bytes())
}

// wait sleeps for the configured latency. It reports false when the client
// went away first.
func (h *Handler) wait(ctx context.Context) bool {
	if h.latency <= 0 {
		return true
	}

	select {
	case <-h.clock.After(h.latency):
		return true
	case <-ctx.Done():
		logger.Debug(ctx, "client left before the stub answered")
		return false
	}
}

// readFields reads the string members of a flat JSON object body. Members of
// other types are skipped.
func readFields(r *http.Request) (map[string]string, error) {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("could not read body: %w", err)
	}

	fields := map[string]string{}
	if len(strings.TrimSpace(string(b))) == 0 {
		return fields, nil
	}

	d := jx.DecodeBytes(b)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if d.Next() != jx.String {
			return d.Skip()
		}
		v, err := d.Str()
		if err != nil {
			return err
		}
		fields[key] = v

		return nil
	}); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	return fields, nil
}

func samplePage(target, host string) string {
	host = html.EscapeString(host)
	target = html.EscapeString(target)

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
 <head>
  <title>
   %[1]s
  </title>
  <script src="https://cdn.stub.local/analytics.js">
  </script>
 </head>
 <body>
  <h1>
   %[1]s
  </h1>
  <form action="/login" method="post">
   <input name="user" type="text"/>
   <input name="password" type="password"/>
  </form>
  <a href="%[2]s">
   home
  </a>
 </body>
</html>
`, host, target)
}

func writeError(ctx context.Context, w http.ResponseWriter, code int, msg string) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("status")
	e.Str(statusError)
	e.FieldStart("msg")
	e.Str(msg)
	e.ObjEnd()

	writeJSON(ctx, w, code, e.Bytes())
}

func writeJSON(ctx context.Context, w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}
