package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySidebar    = "sidebar"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyTarget     = "target"
	KeyKind       = "kind"
	KeyViolations = "violations"
	KeyCategories = "categories"
	KeyDocs       = "docs"
	KeyDurationMS = "duration_ms"
	KeyRunID      = "run_id"
	KeyAddr       = "addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Sidebar(name string) slog.Attr   { return slog.String(KeySidebar, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Violations(n int) slog.Attr      { return slog.Int(KeyViolations, n) }
func Categories(n int) slog.Attr      { return slog.Int(KeyCategories, n) }
func Docs(n int) slog.Attr            { return slog.Int(KeyDocs, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
