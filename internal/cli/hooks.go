package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks logs library events at debug level, failures at warn.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnExportStart(_ context.Context, format string, scale int) {
	h.logger.Debug("export started", "format", format, "scale", scale)
}

func (h *logHooks) OnExportComplete(_ context.Context, format string, scale int, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("export failed", "format", format, "scale", scale, "error", err)
		return
	}
	h.logger.Debug("export complete", "format", format, "scale", scale, "bytes", size, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnFontRegisterStart(_ context.Context, filename string) {
	h.logger.Debug("registering font", "file", filename)
}

func (h *logHooks) OnFontRegisterComplete(_ context.Context, filename, family string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("font registration failed", "file", filename, "error", err)
		return
	}
	h.logger.Debug("font registered", "file", filename, "family", family, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
