// Package chart implements graph.Charter on top of Chart.js: the chart
// configuration is serialized for the browser and the Go callbacks are
// evaluated up front into lookup tables the page script consults.
package chart

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/benchgraph/internal/domain/graph"
)

// Defaults for the Chart.js charter.
const (
	DefaultClickPath = "/graph/click"
	DefaultScriptURL = "https://cdn.jsdelivr.net/npm/chart.js@4.4.4/dist/chart.umd.min.js"
	ContentTypeHTML  = "text/html; charset=utf-8"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Charter renders graph configurations as Chart.js HTML.
type Charter struct {
	tmpl        *template.Template
	clickPath   string
	scriptURL   string
	standalone  bool
	directLinks bool
}

// New parses the embedded templates and applies opts.
func New(opts ...Option) (*Charter, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	c := &Charter{
		tmpl:      tmpl,
		clickPath: DefaultClickPath,
		scriptURL: DefaultScriptURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// view is the template input.
type view struct {
	ID        string
	DOMID     string
	Platform  string
	Bench     string
	Height    int
	MaxWidth  int
	Config    graph.Config
	Details   []string
	Labels    []string
	URLs      []string
	Cursors   map[string]graph.Cursor
	ClickURL  string
	ScriptURL string
}

// Chart renders cfg. A Charter without templates reports
// graph.ErrChartUnavailable. Commit URLs are always embedded; clicks open
// them directly when the charter has no click endpoint.
func (c *Charter) Chart(ctx context.Context, cfg graph.Config) (graph.Artifact, error) {
	if c == nil || c.tmpl == nil {
		return graph.Artifact{}, graph.ErrChartUnavailable
	}
	if err := ctx.Err(); err != nil {
		return graph.Artifact{}, err
	}

	v := view{
		ID:        cfg.ID,
		DOMID:     domID(cfg.ID),
		Platform:  cfg.Platform,
		Bench:     cfg.Bench,
		Height:    cfg.Height,
		MaxWidth:  maxWidth(cfg),
		Config:    cfg,
		Details:   make([]string, len(cfg.Data.Labels)),
		Labels:    make([]string, len(cfg.Data.Labels)),
		URLs:      commitURLs(ctx, cfg),
		Cursors:   cursors(cfg.Callbacks.OnHover),
		ScriptURL: c.scriptURL,
	}
	if !c.directLinks {
		v.ClickURL = c.clickURL(cfg)
	}
	var values []float64
	if len(cfg.Data.Datasets) > 0 {
		values = cfg.Data.Datasets[0].Data
	}
	for i := range v.Details {
		if cfg.Callbacks.AfterTitle != nil {
			v.Details[i] = cfg.Callbacks.AfterTitle(i)
		}
		if cfg.Callbacks.Label != nil && i < len(values) {
			v.Labels[i] = cfg.Callbacks.Label(values[i], i)
		}
	}

	name := "chart"
	if c.standalone {
		name = "page"
	}
	var buf bytes.Buffer
	if err := c.tmpl.ExecuteTemplate(&buf, name, v); err != nil {
		return graph.Artifact{}, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return graph.Artifact{ID: cfg.ID, ContentType: ContentTypeHTML, Body: buf.Bytes()}, nil
}

// clickURL returns the click endpoint with everything but the index filled in.
func (c *Charter) clickURL(cfg graph.Config) string {
	q := url.Values{}
	q.Set("platform", cfg.Platform)
	q.Set("bench", cfg.Bench)
	return c.clickPath + "?" + q.Encode() + "&index="
}

// commitURLs evaluates the click hook once per point and records where each
// click would navigate. Points that open nothing get an empty string.
func commitURLs(ctx context.Context, cfg graph.Config) []string {
	urls := make([]string, len(cfg.Data.Labels))
	if cfg.Callbacks.OnClick == nil {
		return urls
	}
	for i := range urls {
		nav := graph.NavigatorFunc(func(_ context.Context, u string) { urls[i] = u })
		cfg.Callbacks.OnClick(graph.WithContextNavigator(ctx, nav), []graph.ActiveElement{{Index: i}})
	}
	return urls
}

// maxWidth caps the chart width so the aspect ratio never outgrows the
// configured height.
func maxWidth(cfg graph.Config) int {
	ratio := cfg.Options.AspectRatio
	if ratio <= 0 {
		ratio = graph.AspectRatio
	}
	return int(float64(cfg.Height) * ratio)
}

// cursors evaluates the hover hook for the two pointer states.
func cursors(onHover func([]graph.ActiveElement, graph.CursorSetter)) map[string]graph.Cursor {
	out := map[string]graph.Cursor{"active": graph.CursorPointer, "idle": graph.CursorDefault}
	if onHover == nil {
		return out
	}
	onHover([]graph.ActiveElement{{}}, graph.CursorFunc(func(cur graph.Cursor) { out["active"] = cur }))
	onHover(nil, graph.CursorFunc(func(cur graph.Cursor) { out["idle"] = cur }))
	return out
}

// domID turns a graph id into a safe element id.
func domID(id string) string {
	var b strings.Builder
	b.WriteString("graph-")
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteString("_" + strconv.FormatInt(int64(r), 16) + "_")
		}
	}
	return b.String()
}
