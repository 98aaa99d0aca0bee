package graph

import (
	"context"

	"github.com/okian/benchgraph/internal/domain/bench"
)

// ActiveElement is a chart element under the pointer.
type ActiveElement struct {
	DatasetIndex int `json:"datasetIndex"`
	Index        int `json:"index"`
}

// Navigator opens a URL in a new browsing context. Calls are fire-and-forget.
type Navigator interface {
	Open(ctx context.Context, url string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, url string)

// Open calls f.
func (f NavigatorFunc) Open(ctx context.Context, url string) { f(ctx, url) }

// NopNavigator discards navigation requests.
var NopNavigator Navigator = NavigatorFunc(func(context.Context, string) {})

type navigatorKey struct{}

// WithContextNavigator returns a context whose clicks go to nav instead of
// the navigator the handler was built with.
func WithContextNavigator(ctx context.Context, nav Navigator) context.Context {
	return context.WithValue(ctx, navigatorKey{}, nav)
}

func navigatorFrom(ctx context.Context, fallback Navigator) Navigator {
	if nav, ok := ctx.Value(navigatorKey{}).(Navigator); ok && nav != nil {
		return nav
	}
	return fallback
}

// Cursor is a pointer style.
type Cursor string

// Cursor styles.
const (
	CursorPointer Cursor = "pointer"
	CursorDefault Cursor = "default"
)

// CursorSetter applies a pointer style.
type CursorSetter interface {
	SetCursor(c Cursor)
}

// CursorFunc adapts a function to CursorSetter.
type CursorFunc func(c Cursor)

// SetCursor calls f.
func (f CursorFunc) SetCursor(c Cursor) { f(c) }

// Interactions reacts to pointer events on a chart of one dataset.
type Interactions struct {
	ds  bench.DataSet
	nav Navigator
}

// NewInteractions binds a handler to ds. A nil navigator discards clicks.
func NewInteractions(ds bench.DataSet, nav Navigator) Interactions {
	if nav == nil {
		nav = NopNavigator
	}
	return Interactions{ds: ds, nav: nav}
}

// Click opens the commit of the first active element. It reports whether a
// navigation was requested; no elements or a stale index request nothing.
func (h Interactions) Click(ctx context.Context, elements []ActiveElement) bool {
	if len(elements) == 0 {
		return false
	}
	e, ok := h.ds.At(elements[0].Index)
	if !ok {
		return false
	}
	navigatorFrom(ctx, h.nav).Open(ctx, e.Commit.URL)
	return true
}

// Hover shows the clickable cursor while any element is under the pointer.
func (h Interactions) Hover(elements []ActiveElement, cursor CursorSetter) {
	if cursor == nil {
		return
	}
	if len(elements) > 0 {
		cursor.SetCursor(CursorPointer)
		return
	}
	cursor.SetCursor(CursorDefault)
}
