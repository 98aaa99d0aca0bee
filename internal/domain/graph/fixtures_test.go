package graph_test

import (
	"fmt"
	"strings"

	"github.com/okian/benchgraph/internal/domain/bench"
)

func entry(i int, tool bench.Tool, value float64, unit string, rng *string) bench.Entry {
	id := fmt.Sprintf("%02d", i) + strings.Repeat("abcdef0123", 4)
	return bench.Entry{
		Commit: bench.Commit{
			ID:        id,
			URL:       "https://github.com/example/repo/commit/" + id,
			Message:   fmt.Sprintf("commit %d", i),
			Timestamp: fmt.Sprintf("2026-10-%02dT12:00:00Z", i+1),
			Committer: bench.Committer{Username: "dev" + fmt.Sprint(i)},
		},
		Bench: bench.Measurement{Value: value, Unit: unit, Range: rng},
		Tool:  tool,
	}
}

func sampleDataSet(tool bench.Tool) bench.DataSet {
	return bench.DataSet{
		entry(0, tool, 10, "ns/iter", bench.RangeOf("± 1")),
		entry(1, tool, 12.5, "ns/iter", nil),
		entry(2, tool, 9.75, "ns/iter", bench.RangeOf("± 0.2")),
	}
}
