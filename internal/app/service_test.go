package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/benchgraph/internal/adapters/repository"
	"github.com/okian/benchgraph/internal/adapters/source"
	service "github.com/okian/benchgraph/internal/app"
	"github.com/okian/benchgraph/internal/domain/graph"
	"github.com/okian/benchgraph/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const dataJS = `window.BENCHMARK_DATA = {
  "lastUpdate": 1760000000000,
  "repoUrl": "https://github.com/example/repo",
  "entries": {
    "linux": [
      {
        "commit": {"id": "aaaaaaaaaaaa", "url": "https://github.com/example/repo/commit/aaaaaaa",
                   "message": "first", "timestamp": "2026-10-01T10:00:00Z", "committer": {"username": "alice"}},
        "tool": "go",
        "benches": [
          {"name": "fib", "value": 10, "unit": "ns/op", "range": "± 1"},
          {"name": "sha", "value": 5, "unit": "ns/op"}
        ]
      },
      {
        "commit": {"id": "bbbbbbbbbbbb", "url": "https://github.com/example/repo/commit/bbbbbbb",
                   "message": "second", "timestamp": "2026-10-02T10:00:00Z", "committer": {"username": "bob"}},
        "tool": "go",
        "benches": [{"name": "fib", "value": 12, "unit": "ns/op"}]
      }
    ]
  }
};
`

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func writeData(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.js")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

type recordingNavigator struct {
	urls []string
}

func (n *recordingNavigator) Open(_ context.Context, url string) { n.urls = append(n.urls, url) }

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["chartHeight"], ShouldEqual, graph.DefaultHeight)
			So(stats["benchmarks"], ShouldEqual, 0)
		})

		Convey("And starting it without a source fails", func() {
			So(errors.Is(svc.Start(context.Background()), service.ErrNoSource), ShouldBeTrue)
			So(errors.Is(svc.Reload(context.Background()), service.ErrNoSource), ShouldBeTrue)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a service over a data file", t, func() {
		path := writeData(t, dataJS)
		svc := service.New(
			service.WithSource(source.NewFileSource(path)),
			service.WithRefreshInterval(0),
			service.WithHeight(240),
		)
		defer svc.Stop()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then the histories are loaded synchronously", func() {
				So(err, ShouldBeNil)
				list := svc.Benchmarks(ctx)
				So(len(list), ShouldEqual, 2)
				So(list[0].ID, ShouldEqual, "linux-fib")
				So(list[0].Points, ShouldEqual, 2)
				So(list[1].ID, ShouldEqual, "linux-sha")
			})

			Convey("And the stats reflect the load", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["benchmarks"], ShouldEqual, 2)
				So(stats["dataPoints"], ShouldEqual, 3)
				So(stats["loads"], ShouldEqual, int64(1))
				So(stats["source"], ShouldEqual, "file:"+path)
			})

			Convey("And starting twice is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
				So(svc.GetStats()["loads"], ShouldEqual, int64(1))
			})
		})

		Convey("When the service is stopped", func() {
			So(svc.Start(ctx), ShouldBeNil)
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})

			Convey("And stopping again is safe", func() {
				So(func() { svc.Stop() }, ShouldNotPanic)
			})
		})

		Convey("When the file changes and the service reloads", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(os.WriteFile(path, []byte(`{"entries": {"mac": [{"commit": {"id": "c"}, "tool": "cargo", "benches": [{"name": "x", "value": 1, "unit": "s"}]}]}}`), 0o600), ShouldBeNil)
			err := svc.Reload(ctx)

			Convey("Then the new histories replace the old ones", func() {
				So(err, ShouldBeNil)
				list := svc.Benchmarks(ctx)
				So(len(list), ShouldEqual, 1)
				So(list[0].ID, ShouldEqual, "mac-x")
			})
		})
	})

	Convey("Given a service whose data file is missing", t, func() {
		svc := service.New(service.WithSource(source.NewFileSource(filepath.Join(t.TempDir(), "missing.js"))))
		defer svc.Stop()

		Convey("Then it still starts with an empty set", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.Benchmarks(context.Background()), ShouldBeEmpty)
			stats := svc.GetStats()
			So(stats["loadFailures"], ShouldEqual, int64(1))
			So(stats["lastError"], ShouldNotBeEmpty)
		})
	})
}

func TestService_Graphs(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(
			service.WithSource(source.NewFileSource(writeData(t, dataJS))),
			service.WithRefreshInterval(0),
		)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a chart is configured", func() {
			cfg, err := svc.Configure(ctx, "linux", "fib")

			Convey("Then it is built from the stored history", func() {
				So(err, ShouldBeNil)
				So(cfg.ID, ShouldEqual, "linux-fib")
				So(cfg.Data.Labels, ShouldResemble, []string{"aaaaaaa", "bbbbbbb"})
				So(cfg.Data.Datasets[0].Data, ShouldResemble, []float64{10, 12})
				So(cfg.Data.Datasets[0].BorderColor, ShouldEqual, "#00add8")
				So(cfg.Options.Scales.Y.Title.Text, ShouldEqual, "ns/op")
			})
		})

		Convey("When a chart is rendered", func() {
			art, err := svc.Render(ctx, "linux", "fib")

			Convey("Then the Chart.js artifact is returned", func() {
				So(err, ShouldBeNil)
				So(art.ID, ShouldEqual, "linux-fib")
				So(art.ContentType, ShouldContainSubstring, "text/html")
				So(string(art.Body), ShouldContainSubstring, "new Chart(")
			})
		})

		Convey("When an unknown chart is requested", func() {
			_, err := svc.Render(ctx, "linux", "nope")
			_, cerr := svc.Configure(ctx, "windows", "fib")

			Convey("Then not found is reported", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(cerr, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a point is clicked", func() {
			nav := &recordingNavigator{}
			opened, err := svc.Click(ctx, "linux", "fib", 1, nav)

			Convey("Then its commit is opened", func() {
				So(err, ShouldBeNil)
				So(opened, ShouldBeTrue)
				So(nav.urls, ShouldResemble, []string{"https://github.com/example/repo/commit/bbbbbbb"})
			})
		})

		Convey("When a stale index is clicked", func() {
			nav := &recordingNavigator{}
			opened, err := svc.Click(ctx, "linux", "fib", 9, nav)

			Convey("Then nothing is opened", func() {
				So(err, ShouldBeNil)
				So(opened, ShouldBeFalse)
				So(nav.urls, ShouldBeEmpty)
			})
		})

		Convey("When a negative index is clicked", func() {
			_, err := svc.Click(ctx, "linux", "fib", -1, nil)

			Convey("Then the index is rejected", func() {
				So(errors.Is(err, service.ErrInvalidPoint), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service whose charter fails", t, func() {
		boom := errors.New("canvas lost")
		svc := service.New(
			service.WithSource(source.NewFileSource(writeData(t, dataJS))),
			service.WithCharter(graph.CharterFunc(func(context.Context, graph.Config) (graph.Artifact, error) {
				return graph.Artifact{}, boom
			})),
		)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("Then render surfaces the failure", func() {
			_, err := svc.Render(ctx, "linux", "fib")
			So(errors.Is(err, boom), ShouldBeTrue)
		})
	})
}
