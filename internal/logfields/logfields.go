// Package logfields holds the canonical structured-logging keys shared by the
// pipeline diagnostics and the CLI, so field names do not drift.
package logfields

import "log/slog"

const (
	KeyStage       = "stage"
	KeyComponent   = "component"
	KeyReason      = "reason"
	KeyDetail      = "detail"
	KeyPath        = "path"
	KeyOutput      = "output"
	KeyWorkers     = "workers"
	KeyHeadings    = "headings"
	KeyDiagnostics = "diagnostics"
	KeyDurationMS  = "duration_ms"
	KeyError       = "error"
)

func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Component(name string) slog.Attr { return slog.String(KeyComponent, name) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func Detail(d string) slog.Attr       { return slog.String(KeyDetail, d) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Workers(n int) slog.Attr         { return slog.Int(KeyWorkers, n) }
func Headings(n int) slog.Attr        { return slog.Int(KeyHeadings, n) }
func Diagnostics(n int) slog.Attr     { return slog.Int(KeyDiagnostics, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
