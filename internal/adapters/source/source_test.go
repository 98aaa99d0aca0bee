package source_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/benchgraph/internal/adapters/source"
	"github.com/okian/benchgraph/internal/domain/bench"
	"github.com/okian/benchgraph/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleDataJS = `window.BENCHMARK_DATA = {
  "lastUpdate": 1760000000000,
  "repoUrl": "https://github.com/example/zkvm",
  "entries": {
    "Linux-cpu": [
      {
        "commit": {
          "author": {"name": "A", "username": "alice"},
          "committer": {"name": "A", "username": "alice"},
          "id": "1111111aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
          "message": "first",
          "timestamp": "2026-10-01T10:00:00Z",
          "url": "https://github.com/example/zkvm/commit/1111111"
        },
        "date": 1760000000000,
        "tool": "cargo",
        "benches": [
          {"name": "fib/100", "value": 120.5, "range": "± 3", "unit": "ns/iter"},
          {"name": "sha/1k", "value": 42, "unit": "ns/iter"}
        ]
      },
      {
        "commit": {
          "committer": {"username": "bob"},
          "id": "2222222bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
          "message": "second",
          "timestamp": "2026-10-02T10:00:00Z",
          "url": "https://github.com/example/zkvm/commit/2222222"
        },
        "tool": "cargo",
        "benches": [
          {"name": "fib/100", "value": 118, "range": "", "unit": "ns/iter"}
        ]
      }
    ],
    "macOS-metal": [
      {
        "commit": {"id": "3333333", "url": "u", "message": "m", "timestamp": "t", "committer": {"username": "c"}},
        "tool": "unknown-tool",
        "benches": [{"name": "fib/100", "value": 1, "unit": "Hz"}, {"value": 2}]
      }
    ]
  }
};
`

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestParse(t *testing.T) {
	Convey("Given a data.js document", t, func() {
		snap, err := source.Parse([]byte(sampleDataJS))

		Convey("Then it parses into per-platform, per-bench histories", func() {
			So(err, ShouldBeNil)
			So(snap.RepoURL, ShouldEqual, "https://github.com/example/zkvm")
			So(snap.LastUpdate.Equal(time.UnixMilli(1760000000000)), ShouldBeTrue)
			So(snap.Keys(), ShouldResemble, []bench.Key{
				{Platform: "Linux-cpu", Bench: "fib/100"},
				{Platform: "Linux-cpu", Bench: "sha/1k"},
				{Platform: "macOS-metal", Bench: "fib/100"},
			})
		})

		Convey("And history entries keep run order and commit metadata", func() {
			ds, ok := snap.Dataset("Linux-cpu", "fib/100")
			So(ok, ShouldBeTrue)
			So(len(ds), ShouldEqual, 2)
			So(ds[0].Commit.ID, ShouldStartWith, "1111111")
			So(ds[0].Commit.Committer.Username, ShouldEqual, "alice")
			So(ds[0].Bench.Value, ShouldEqual, 120.5)
			So(*ds[0].Bench.Range, ShouldEqual, "± 3")
			So(ds[0].Tool, ShouldEqual, bench.ToolCargo)
			So(ds[1].Commit.Message, ShouldEqual, "second")
			So(ds[1].Bench.Range, ShouldBeNil)
		})

		Convey("And unknown tools and nameless benches are handled", func() {
			ds, ok := snap.Dataset("macOS-metal", "fib/100")
			So(ok, ShouldBeTrue)
			So(ds[0].Tool, ShouldEqual, bench.ToolUnknown)
			So(snap.Len(), ShouldEqual, 3)
		})
	})

	Convey("Given a plain JSON document", t, func() {
		snap, err := source.Parse([]byte(`{"entries": {"p": []}}`))

		Convey("Then it parses to an empty snapshot", func() {
			So(err, ShouldBeNil)
			So(snap.Len(), ShouldEqual, 0)
		})
	})

	Convey("Given invalid documents", t, func() {
		cases := map[string]string{
			"empty":           "   ",
			"malformed":       `window.BENCHMARK_DATA = {"entries": [`,
			"no entries":      `{"repoUrl": "x"}`,
			"entries array":   `{"entries": []}`,
			"platform object": `{"entries": {"p": {}}}`,
			"no assignment":   `window.BENCHMARK_DATA {}`,
		}
		for name, doc := range cases {
			_, err := source.Parse([]byte(doc))
			Convey("Then "+name+" is rejected as invalid data", func() {
				So(errors.Is(err, source.ErrInvalidData), ShouldBeTrue)
			})
		}
	})
}

func TestFileSource(t *testing.T) {
	Convey("Given a data.js file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "data.js")
		So(os.WriteFile(path, []byte(sampleDataJS), 0o600), ShouldBeNil)
		src := source.NewFileSource(path)

		Convey("When loading", func() {
			snap, err := src.Load(context.Background())

			Convey("Then the snapshot is returned", func() {
				So(err, ShouldBeNil)
				So(snap.Len(), ShouldEqual, 3)
				So(src.Name(), ShouldEqual, "file:"+path)
			})
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := src.Load(ctx)

			Convey("Then loading fails", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := source.NewFileSource("/no/such/data.js").Load(context.Background())

		Convey("Then loading fails", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestHTTPSource(t *testing.T) {
	Convey("Given an HTTP server publishing data.js", t, func() {
		hits := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			switch r.URL.Path {
			case "/data.js":
				_, _ = w.Write([]byte(sampleDataJS))
			case "/flaky.js":
				if hits == 1 {
					w.WriteHeader(http.StatusBadGateway)
					return
				}
				_, _ = w.Write([]byte(sampleDataJS))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		opts := []source.HTTPOption{
			source.WithRetryMax(2),
			source.WithRetryWait(time.Millisecond, 2*time.Millisecond),
			source.WithTimeout(time.Second),
			source.WithLogger(logger.Get()),
		}

		Convey("When fetching an existing document", func() {
			snap, err := source.NewHTTPSource(srv.URL+"/data.js", opts...).Load(context.Background())

			Convey("Then it is parsed", func() {
				So(err, ShouldBeNil)
				So(snap.Len(), ShouldEqual, 3)
			})
		})

		Convey("When the first attempt fails", func() {
			snap, err := source.NewHTTPSource(srv.URL+"/flaky.js", opts...).Load(context.Background())

			Convey("Then the fetch is retried", func() {
				So(err, ShouldBeNil)
				So(snap.Len(), ShouldEqual, 3)
				So(hits, ShouldEqual, 2)
			})
		})

		Convey("When the document does not exist", func() {
			_, err := source.NewHTTPSource(srv.URL+"/missing.js", opts...).Load(context.Background())

			Convey("Then a fetch error is returned", func() {
				So(errors.Is(err, source.ErrFetch), ShouldBeTrue)
			})
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given source settings", t, func() {
		Convey("Then a URL wins over a file", func() {
			src, err := source.New("data.js", "http://example.com/data.js")
			So(err, ShouldBeNil)
			So(src.Name(), ShouldEqual, "http:http://example.com/data.js")
		})

		Convey("And a file is used when no URL is set", func() {
			src, err := source.New("data.js", "")
			So(err, ShouldBeNil)
			So(src.Name(), ShouldEqual, "file:data.js")
		})

		Convey("And nothing configured is an error", func() {
			_, err := source.New("", "")
			So(errors.Is(err, source.ErrInvalidData), ShouldBeTrue)
		})
	})
}
