package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/noah-isme/bouquet-order/internal/common"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

var ready atomic.Bool

func init() { ready.Store(true) }

// SetReady flips readiness, e.g. to drain traffic during shutdown.
func SetReady(v bool) { ready.Store(v) }

// Handler serves liveness and readiness probes.
type Handler struct {
	Checks map[string]Check
	// Info entries are reported alongside checks but never fail readiness.
	Info    map[string]func() string
	Timeout time.Duration
}

// Live always reports ok while the process runs.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready runs every check and reports 503 if any fails or the server is draining.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	status := make(map[string]string, len(h.Checks)+len(h.Info)+1)
	for name, info := range h.Info {
		status[name] = info()
	}
	healthy := ready.Load()
	if !healthy {
		status["server"] = "shutting down"
	}
	for name, check := range h.Checks {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
		err := check(ctx)
		cancel()
		if err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}
	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	common.JSON(w, code, status)
}

func (h Handler) timeout() time.Duration {
	if h.Timeout <= 0 {
		return 500 * time.Millisecond
	}
	return h.Timeout
}
