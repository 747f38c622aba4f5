package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by logging at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load start", "source", source)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, source string, headers int, d time.Duration, err error) {
	h.logger.Debug("load complete", "source", source, "headers", headers, "elapsed", d, "err", err)
}

func (h *LogHooks) OnFilterComplete(_ context.Context, prefixes []string, visible, intermediate, warnings int) {
	h.logger.Debug("filter complete", "prefixes", prefixes, "visible", visible, "intermediate", intermediate, "warnings", warnings)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, placer string, headers int) {
	h.logger.Debug("layout start", "placer", placer, "headers", headers)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, placer string, crossings int, d time.Duration, err error) {
	h.logger.Debug("layout complete", "placer", placer, "crossings", crossings, "elapsed", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render start", "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.logger.Debug("render complete", "format", format, "bytes", size, "elapsed", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "elapsed", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
