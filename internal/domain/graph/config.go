package graph

import "context"

// Chart layout constants.
const (
	ChartType           = "line"
	DefaultHeight       = 300
	AspectRatio         = 4.0
	XAxisTitle          = "commit"
	AnimationDurationMS = 0
)

// Config is the declarative chart definition handed to a Charter. Everything
// except Callbacks serializes to Chart.js-compatible JSON.
type Config struct {
	ID        string    `json:"id"`
	Platform  string    `json:"platform"`
	Bench     string    `json:"bench"`
	Height    int       `json:"height"`
	Type      string    `json:"type"`
	Data      ChartData `json:"data"`
	Options   Options   `json:"options"`
	Callbacks Callbacks `json:"-"`
}

// ChartData holds the x-axis labels and the series.
type ChartData struct {
	Labels   []string `json:"labels"`
	Datasets []Series `json:"datasets"`
}

// Series is one plotted line.
type Series struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	Fill            bool      `json:"fill"`
}

// Options mirrors the subset of Chart.js options the renderer sets.
type Options struct {
	Responsive  bool        `json:"responsive"`
	AspectRatio float64     `json:"aspectRatio"`
	Animation   Animation   `json:"animation"`
	Transitions Transitions `json:"transitions"`
	Scales      Scales      `json:"scales"`
	Plugins     Plugins     `json:"plugins"`
}

// Animation controls chart animation timing.
type Animation struct {
	Duration int `json:"duration"`
}

// Transitions controls animations triggered by interaction.
type Transitions struct {
	Active TransitionMode `json:"active"`
	Resize TransitionMode `json:"resize"`
}

// TransitionMode wraps an Animation for one transition kind.
type TransitionMode struct {
	Animation Animation `json:"animation"`
}

// Scales holds both axes.
type Scales struct {
	X Axis `json:"x"`
	Y Axis `json:"y"`
}

// Axis configures one axis.
type Axis struct {
	Title       AxisTitle `json:"title"`
	BeginAtZero bool      `json:"beginAtZero"`
}

// AxisTitle is an axis caption.
type AxisTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

// Plugins configures chart plugins.
type Plugins struct {
	Legend  Legend  `json:"legend"`
	Tooltip Tooltip `json:"tooltip"`
}

// Legend toggles the legend.
type Legend struct {
	Display bool `json:"display"`
}

// Tooltip configures the hover tooltip.
type Tooltip struct {
	Mode      string `json:"mode"`
	Intersect bool   `json:"intersect"`
}

// Callbacks are the hooks the charting capability invokes.
type Callbacks struct {
	OnClick    func(ctx context.Context, elements []ActiveElement) bool
	OnHover    func(elements []ActiveElement, cursor CursorSetter)
	AfterTitle func(index int) string
	Label      func(value float64, index int) string
}

// GraphID returns the composite key of a chart.
func GraphID(platform, benchName string) string {
	return platform + "-" + benchName
}
