package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/benchgraph/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DataFile, convey.ShouldEqual, "dev/bench/data.js")
			convey.So(cfg.ChartHeight, convey.ShouldEqual, 300)
			convey.So(cfg.DefaultColor, convey.ShouldEqual, "#333333")
			convey.So(cfg.RefreshInterval(), convey.ShouldEqual, time.Minute)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid fields", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":       func(c *config.Config) { c.Addr = "" },
			"no data source":   func(c *config.Config) { c.DataFile = ""; c.DataURL = "" },
			"zero height":      func(c *config.Config) { c.ChartHeight = 0 },
			"negative refresh": func(c *config.Config) { c.RefreshIntervalSec = -1 },
			"negative retries": func(c *config.Config) { c.HTTPRetryMax = -2 },
		}

		convey.Convey("Then each one fails validation", func() {
			for _, mutate := range cases {
				cfg := config.New()
				mutate(cfg)
				err := cfg.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			}
		})

		convey.Convey("And a URL alone is a valid data source", func() {
			cfg := config.New()
			cfg.DataFile = ""
			cfg.DataURL = "https://example.com/dev/bench/data.js"
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
