package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

// counterValue sums every series of a gathered counter family.
func counterValue(reg *prometheus.Registry, name string) float64 {
	mfs, err := reg.Gather()
	if err != nil {
		return -1
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		total := 0.0
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func TestManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(
			WithPrometheusRegistry(reg),
			WithNamespace("test"),
			WithHistogramBuckets([]float64{1, 10}),
			WithConstLabels(map[string]string{"env": "test"}),
		)

		Convey("When renders and navigations are recorded", func() {
			m.RecordRender("ok", 1.5, 12)
			m.RecordRender("error", 0.2, 0)
			m.RecordNavigation(true)
			m.RecordNavigation(false)
			m.RecordNavigation(true)

			Convey("Then the counters reflect them", func() {
				So(counterValue(reg, "test_renders_total"), ShouldEqual, 2)
				So(counterValue(reg, "test_navigations_total"), ShouldEqual, 3)
			})
		})

		Convey("When a snapshot publish and a source load are recorded", func() {
			m.RecordSnapshotPublish(0.4, time.Unix(1700000000, 0))
			m.RecordSourceLoad("file", "ok", 3)

			Convey("Then they are exported", func() {
				So(counterValue(reg, "test_snapshot_publishes_total"), ShouldEqual, 1)
				So(counterValue(reg, "test_source_loads_total"), ShouldEqual, 1)
			})
		})

		Convey("When a second manager registers on the same registry", func() {
			Convey("Then registration panics on duplicate collectors", func() {
				So(func() { NewManager(WithPrometheusRegistry(reg), WithNamespace("test")) }, ShouldPanic)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then every helper records without panicking", func() {
			So(func() {
				RecordRender("ok", 1, 3)
				RecordNavigation(true)
				RecordSourceLoad("http", "error", 10)
				RecordSnapshotPublish(1, time.Now())
				UpdateBenchmarksTotal(4)
				UpdateDataPointsTotal(40)
				RecordRepositoryQueryLatency(0.01)
				RecordHTTPRequest("graph", "GET", "200")
				RecordHTTPRequestDuration("graph", "GET", "200", 2)
				RecordErrorByComponent("refresh", "load_failed")
				RecordErrorByType("server_error", "high")
				RecordErrorByEndpoint("graph", "GET", "not_found")
				RecordErrorLatency("http", "not_found", 1)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
			So(GetRegistry(), ShouldNotBeNil)
			So(counterValue(GetRegistry(), "benchgraph_navigations_total"), ShouldBeGreaterThan, 0)
		})
	})
}

func TestRegister(t *testing.T) {
	Convey("Given an extra collector", t, func() {
		opts := prometheus.CounterOpts{Name: "benchgraph_test_register_total", Help: "register test"}
		c := prometheus.NewCounter(opts)

		Convey("When it is registered twice", func() {
			first := Register(c)
			second := Register(c)

			Convey("Then both calls succeed", func() {
				So(first, ShouldBeNil)
				So(second, ShouldBeNil)
			})

			Convey("And a clashing collector is rejected", func() {
				clash := prometheus.NewCounter(prometheus.CounterOpts{Name: opts.Name, Help: "different help"})
				err := Register(clash)
				So(errors.Is(err, ErrRegister), ShouldBeTrue)
			})
		})
	})
}
