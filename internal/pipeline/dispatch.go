package pipeline

import (
	"log/slog"

	"golang.org/x/net/html"
)

// Transform rewrites a component element in place. It may replace the
// element's children and attributes but must leave the element itself where
// it is in the tree.
type Transform func(el *html.Node, tc *TransformContext)

// TransformContext carries per-invocation state to a Transform.
type TransformContext struct {
	Name  string // normalized construct name
	diags *Diagnostics
}

// Report records a diagnostic attributed to the current construct.
func (tc *TransformContext) Report(level slog.Level, reason, detail string) {
	if tc == nil {
		return
	}
	tc.diags.Report(Diagnostic{
		Level:     level,
		Stage:     StageDispatch,
		Component: tc.Name,
		Reason:    reason,
		Detail:    detail,
	})
}

// Built-in construct names.
const (
	ConstructTabs       = "tabs"
	ConstructFrameworks = "frameworks"
)

// Dispatcher maps construct names to transforms.
// Register every transform before the first Dispatch; a Dispatcher that is
// no longer modified is safe for concurrent use.
type Dispatcher struct {
	transforms map[string]Transform
}

// NewDispatcher creates a Dispatcher with the built-in constructs registered.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{transforms: make(map[string]Transform)}
	d.Register(ConstructTabs, TransformTabs)
	d.Register(ConstructFrameworks, TransformFrameworks)
	d.Register("framework", TransformFrameworks)
	d.Register("framework-panels", TransformFrameworks)
	return d
}

// Register binds name (case-insensitive) to fn, replacing any previous
// binding. A nil fn removes the binding.
func (d *Dispatcher) Register(name string, fn Transform) {
	key := normalizeName(name)
	if fn == nil {
		delete(d.transforms, key)
		return
	}
	d.transforms[key] = fn
}

// Lookup returns the transform registered for name.
func (d *Dispatcher) Lookup(name string) (Transform, bool) {
	fn, ok := d.transforms[normalizeName(name)]
	return fn, ok
}

// Dispatch runs the registered transform of every component element under
// root, outermost first. After a transform runs, its rewritten children are
// visited too, so components nested in panels are transformed as well.
// Components without a registered transform are left as they are.
func (d *Dispatcher) Dispatch(root *html.Node, diags *Diagnostics) {
	Inspect(root, func(n *html.Node) bool {
		if !IsComponent(n) {
			return true
		}

		name := ComponentName(n)
		fn, ok := d.transforms[name]
		if !ok {
			diags.Report(Diagnostic{
				Level:     slog.LevelDebug,
				Stage:     StageDispatch,
				Component: name,
				Reason:    "no transform registered",
			})
			return true
		}

		fn(n, &TransformContext{Name: name, diags: diags})
		return true
	})
}
