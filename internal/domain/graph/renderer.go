package graph

import (
	"context"
	"fmt"

	"github.com/okian/benchgraph/internal/domain/bench"
)

// Artifact is the rendered chart produced by a Charter.
type Artifact struct {
	ID          string
	ContentType string
	Body        []byte
}

// Charter is the external charting capability. It draws a Config.
type Charter interface {
	Chart(ctx context.Context, cfg Config) (Artifact, error)
}

// CharterFunc adapts a function to Charter.
type CharterFunc func(ctx context.Context, cfg Config) (Artifact, error)

// Chart calls f.
func (f CharterFunc) Chart(ctx context.Context, cfg Config) (Artifact, error) { return f(ctx, cfg) }

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithPalette sets the tool color table.
func WithPalette(p Palette) Option {
	return func(r *Renderer) {
		r.palette = p
	}
}

// WithCharter sets the charting capability used by Render.
func WithCharter(c Charter) Option {
	return func(r *Renderer) {
		if c != nil {
			r.charter = c
		}
	}
}

// WithNavigator sets where click callbacks send navigation requests.
func WithNavigator(n Navigator) Option {
	return func(r *Renderer) {
		if n != nil {
			r.navigator = n
		}
	}
}

// WithHeight sets the fixed chart height in pixels.
func WithHeight(px int) Option {
	return func(r *Renderer) {
		if px > 0 {
			r.height = px
		}
	}
}

// Renderer composes palette, projection, tooltips and interactions into a
// chart configuration. It holds no per-call state.
type Renderer struct {
	palette   Palette
	charter   Charter
	navigator Navigator
	height    int
}

// NewRenderer creates a renderer with the default palette and height.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		palette:   DefaultPalette(),
		navigator: NopNavigator,
		height:    DefaultHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Palette returns the renderer's color table.
func (r *Renderer) Palette() Palette { return r.palette }

// Configure builds the chart configuration for one (platform, bench) pair.
// It is a pure function of its inputs.
func (r *Renderer) Configure(platform, benchName string, ds bench.DataSet) Config {
	proj := NewProjector(r.palette).Project(ds)
	tips := NewTooltips(ds)
	hits := NewInteractions(ds, r.navigator)

	return Config{
		ID:       GraphID(platform, benchName),
		Platform: platform,
		Bench:    benchName,
		Height:   r.height,
		Type:     ChartType,
		Data: ChartData{
			Labels: proj.Labels,
			Datasets: []Series{{
				Label:           benchName,
				Data:            proj.Values,
				BorderColor:     proj.SeriesColor,
				BackgroundColor: proj.FillColor,
				Fill:            true,
			}},
		},
		Options: Options{
			Responsive:  true,
			AspectRatio: AspectRatio,
			Animation:   Animation{Duration: AnimationDurationMS},
			Transitions: Transitions{
				Active: TransitionMode{Animation: Animation{Duration: AnimationDurationMS}},
				Resize: TransitionMode{Animation: Animation{Duration: AnimationDurationMS}},
			},
			Scales: Scales{
				X: Axis{Title: AxisTitle{Display: true, Text: XAxisTitle}},
				Y: Axis{Title: AxisTitle{Display: true, Text: proj.YAxisUnit}, BeginAtZero: true},
			},
			Plugins: Plugins{
				Legend:  Legend{Display: true},
				Tooltip: Tooltip{Mode: "index", Intersect: false},
			},
		},
		Callbacks: Callbacks{
			OnClick:    hits.Click,
			OnHover:    hits.Hover,
			AfterTitle: tips.Detail,
			Label:      tips.Label,
		},
	}
}

// Render configures the chart and hands it to the charting capability.
// Charter failures are returned to the caller.
func (r *Renderer) Render(ctx context.Context, platform, benchName string, ds bench.DataSet) (Artifact, error) {
	const op = "graph.render"
	if r.charter == nil {
		return Artifact{}, fmt.Errorf("%s: %w", op, ErrChartUnavailable)
	}
	art, err := r.charter.Chart(ctx, r.Configure(platform, benchName, ds))
	if err != nil {
		return Artifact{}, fmt.Errorf("%s %s: %w", op, GraphID(platform, benchName), err)
	}
	return art, nil
}
