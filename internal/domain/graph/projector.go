package graph

import "github.com/okian/benchgraph/internal/domain/bench"

const (
	// ShortHashLength is the number of commit id characters used as a label.
	ShortHashLength = 7
	// FillAlpha is appended to the series color to get the area fill color.
	FillAlpha = "60"
)

// Projection is the chart series data derived from a dataset.
type Projection struct {
	Labels      []string
	Values      []float64
	SeriesColor string
	FillColor   string
	YAxisUnit   string
}

// Projector converts datasets into series data.
type Projector struct {
	palette Palette
}

// NewProjector creates a projector resolving colors through p.
func NewProjector(p Palette) Projector {
	return Projector{palette: p}
}

// Project builds labels and values in dataset order. An empty dataset yields
// empty sequences, the fallback color and an empty unit.
func (p Projector) Project(ds bench.DataSet) Projection {
	out := Projection{
		Labels: make([]string, len(ds)),
		Values: make([]float64, len(ds)),
	}
	for i, e := range ds {
		out.Labels[i] = ShortHash(e.Commit.ID)
		out.Values[i] = e.Bench.Value
	}
	out.SeriesColor = p.palette.ColorFor(ds)
	out.FillColor = out.SeriesColor + FillAlpha
	if first, ok := ds.First(); ok {
		out.YAxisUnit = first.Bench.Unit
	}
	return out
}

// ShortHash returns the first ShortHashLength characters of a commit id.
func ShortHash(id string) string {
	r := []rune(id)
	if len(r) <= ShortHashLength {
		return id
	}
	return string(r[:ShortHashLength])
}
