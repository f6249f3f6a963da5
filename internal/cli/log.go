package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
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

// done logs msg along with the elapsed time, e.g. "Analysis complete (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, p.elapsed())
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

// =============================================================================
// Observability hooks
// =============================================================================

// logHooks logs pipeline, cache and HTTP events at debug level. It
// implements observability.PipelineHooks, CacheHooks and HTTPHooks.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadStart(_ context.Context, loader, source string) {
	h.logger.Debug("load start", "loader", loader, "source", source)
}

func (h *logHooks) OnLoadComplete(_ context.Context, loader, source string, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "loader", loader, "source", source, "duration", d, "err", err)
		return
	}
	h.logger.Debug("load complete", "loader", loader, "nodes", nodeCount, "duration", d)
}

func (h *logHooks) OnAnalyzeStart(_ context.Context, operation string, nodeCount int) {
	h.logger.Debug("analyze start", "operation", operation, "nodes", nodeCount)
}

func (h *logHooks) OnAnalyzeComplete(_ context.Context, operation string, d time.Duration) {
	h.logger.Debug("analyze complete", "operation", operation, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, renderer string) {
	h.logger.Debug("render start", "renderer", renderer)
}

func (h *logHooks) OnRenderComplete(_ context.Context, renderer string, d time.Duration, err error) {
	h.logger.Debug("render complete", "renderer", renderer, "duration", d, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
