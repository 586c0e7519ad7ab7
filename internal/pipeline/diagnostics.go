package pipeline

import (
	"context"
	"log/slog"

	"github.com/alnah/go-docmark/internal/logfields"
)

// Stage names used in diagnostics.
const (
	StageMarkers   = "markers"
	StageDispatch  = "dispatch"
	StageHeadings  = "headings"
	StageHighlight = "highlight"
)

// Diagnostic describes input the pipeline degraded gracefully on.
// Diagnostics are never errors: the document is still produced.
type Diagnostic struct {
	Level     slog.Level `json:"level"`
	Stage     string     `json:"stage"`
	Component string     `json:"component,omitempty"`
	Reason    string     `json:"reason"`
	Detail    string     `json:"detail,omitempty"`
}

// Diagnostics collects diagnostics for one document and optionally mirrors
// them to a logger. Not safe for concurrent use.
type Diagnostics struct {
	logger *slog.Logger
	list   []Diagnostic
}

// NewDiagnostics creates a sink. A nil logger only collects.
func NewDiagnostics(logger *slog.Logger) *Diagnostics {
	return &Diagnostics{logger: logger}
}

// Report records d. A nil receiver discards it.
func (d *Diagnostics) Report(diag Diagnostic) {
	if d == nil {
		return
	}
	d.list = append(d.list, diag)

	if d.logger == nil {
		return
	}
	attrs := []slog.Attr{logfields.Stage(diag.Stage), logfields.Reason(diag.Reason)}
	if diag.Component != "" {
		attrs = append(attrs, logfields.Component(diag.Component))
	}
	if diag.Detail != "" {
		attrs = append(attrs, logfields.Detail(diag.Detail))
	}
	d.logger.LogAttrs(context.Background(), diag.Level, "docmark diagnostic", attrs...)
}

// List returns the collected diagnostics in report order.
func (d *Diagnostics) List() []Diagnostic {
	if d == nil {
		return nil
	}
	return d.list
}
