// Package source loads benchmark history published in the
// github-action-benchmark data.js format.
package source

import (
	"bytes"
	"fmt"
	"time"

	"github.com/okian/benchgraph/internal/domain/bench"
	"github.com/tidwall/gjson"
)

// jsPrefix introduces the assignment wrapping the JSON document in data.js.
var jsPrefix = []byte("window.BENCHMARK_DATA")

// Parse decodes a data.js (or plain JSON) document into a snapshot.
// Each key of "entries" is a platform; each run lists the benches measured at
// one commit. Runs are expected oldest first.
func Parse(raw []byte) (*bench.Snapshot, error) {
	const op = "source.parse"
	doc, err := stripAssignment(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("%s: %w: malformed JSON", op, ErrInvalidData)
	}

	root := gjson.ParseBytes(doc)
	entries := root.Get("entries")
	if !entries.IsObject() {
		return nil, fmt.Errorf("%s: %w: missing entries object", op, ErrInvalidData)
	}

	snap := bench.NewSnapshot()
	snap.RepoURL = root.Get("repoUrl").String()
	if ms := root.Get("lastUpdate").Int(); ms > 0 {
		snap.LastUpdate = time.UnixMilli(ms).UTC()
	}

	var perr error
	entries.ForEach(func(platform, runs gjson.Result) bool {
		if !runs.IsArray() {
			perr = fmt.Errorf("%s: %w: entries.%s is not an array", op, ErrInvalidData, platform.String())
			return false
		}
		runs.ForEach(func(_, run gjson.Result) bool {
			commit := parseCommit(run.Get("commit"))
			tool := bench.ParseTool(run.Get("tool").String())
			run.Get("benches").ForEach(func(_, b gjson.Result) bool {
				name := b.Get("name").String()
				if name == "" {
					return true
				}
				snap.Add(platform.String(), name, bench.Entry{
					Commit: commit,
					Bench: bench.Measurement{
						Value: b.Get("value").Float(),
						Unit:  b.Get("unit").String(),
						Range: bench.RangeOf(b.Get("range").String()),
					},
					Tool: tool,
				})
				return true
			})
			return true
		})
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return snap, nil
}

func parseCommit(c gjson.Result) bench.Commit {
	return bench.Commit{
		ID:        c.Get("id").String(),
		URL:       c.Get("url").String(),
		Message:   c.Get("message").String(),
		Timestamp: c.Get("timestamp").String(),
		Committer: bench.Committer{Username: c.Get("committer.username").String()},
	}
}

// stripAssignment removes a leading "window.BENCHMARK_DATA =" and a trailing
// semicolon, leaving the JSON document.
func stripAssignment(raw []byte) ([]byte, error) {
	doc := bytes.TrimSpace(raw)
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidData)
	}
	if bytes.HasPrefix(doc, jsPrefix) {
		eq := bytes.IndexByte(doc, '=')
		if eq < 0 {
			return nil, fmt.Errorf("%w: missing assignment", ErrInvalidData)
		}
		doc = bytes.TrimSpace(doc[eq+1:])
	}
	doc = bytes.TrimSuffix(doc, []byte(";"))
	return bytes.TrimSpace(doc), nil
}
