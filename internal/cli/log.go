package cli

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered hud (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Hooks
// =============================================================================

// logHooks forwards layout anomalies to the logger and keeps relayout
// counts for debug output.
type logHooks struct {
	observability.NoopCacheHooks
	logger    *log.Logger
	relayouts atomic.Int64
}

func installHooks(l *log.Logger) *logHooks {
	h := &logHooks{logger: l}
	observability.SetLayoutHooks(h)
	observability.SetCacheHooks(h)
	return h
}

func (h *logHooks) OnRelayout(id uint64, box geom.Box) { h.relayouts.Add(1) }

// OnResize reports the relayouts since the previous resize.
func (h *logHooks) OnResize(rootID uint64, width, height float64) {
	h.logger.Debug("container resized", "root", rootID, "width", width, "height", height, "relayouts", h.relayouts.Swap(0))
}

func (h *logHooks) OnAnomaly(kind observability.Anomaly, id uint64, detail string) {
	h.logger.Warn("layout anomaly", "kind", kind, "node", id, "detail", detail)
}

func (h *logHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}
