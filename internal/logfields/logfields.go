package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyPost       = "post"
	KeyStage      = "stage"
	KeyBuildID    = "build_id"
	KeyDurationMS = "duration_ms"
	KeyCategory   = "category"
	KeyTheme      = "theme"
	KeyURL        = "url"
	KeyPort       = "port"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Post(p string) slog.Attr         { return slog.String(KeyPost, p) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func Theme(t string) slog.Attr        { return slog.String(KeyTheme, t) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Port(p int) slog.Attr            { return slog.Int(KeyPort, p) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
