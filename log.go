package ghostfat

import (
	"context"
	"log/slog"
)

// logattrs mirrors soypat-fat's (*FS).logattrs helper: a single choke point
// through which every log record this device emits passes, with only the
// caller's attrs attached, defaulting to slog.Default() when no logger was
// configured.
func (d *Device) logattrs(level slog.Level, msg string, attrs ...slog.Attr) {
	log := d.log
	if log == nil {
		log = slog.Default()
	}
	log.LogAttrs(context.Background(), level, msg, attrs...)
}

func (d *Device) debug(msg string, attrs ...slog.Attr) {
	d.logattrs(slog.LevelDebug, msg, attrs...)
}

func (d *Device) warn(msg string, attrs ...slog.Attr) {
	d.logattrs(slog.LevelWarn, msg, attrs...)
}

func (d *Device) logerror(msg string, attrs ...slog.Attr) {
	d.logattrs(slog.LevelError, msg, attrs...)
}
