package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/PolySpeedRunners/INF8808-Project/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.MinYear, convey.ShouldEqual, 2000)
			convey.So(cfg.OlympicMarker, convey.ShouldEqual, "(Olympic)")
			convey.So(cfg.MedalValues, convey.ShouldResemble, map[string]int{"gold": 3, "silver": 2, "bronze": 1})
			convey.So(cfg.WorkerCount, convey.ShouldEqual, 1)
			convey.So(cfg.FetchTimeout(), convey.ShouldEqual, 30*time.Second)
		})

		convey.Convey("Then it validates", func() {
			convey.So(config.Validate(cfg), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given invalid configs", t, func() {
		cases := map[string]func(*config.Config){
			"bad log level":    func(c *config.Config) { c.LogLevel = "loud" },
			"no addr":          func(c *config.Config) { c.Addr = "" },
			"no data source":   func(c *config.Config) { c.DataDir = "" },
			"bad base url":     func(c *config.Config) { c.DataBaseURL = "not a url" },
			"zero workers":     func(c *config.Config) { c.WorkerCount = 0 },
			"unknown tier":     func(c *config.Config) { c.MedalValues = map[string]int{"platinum": 4} },
			"negative value":   func(c *config.Config) { c.MedalValues = map[string]int{"gold": -1} },
			"unknown scale key": func(c *config.Config) { c.ScaleKeys = []string{"height"} },
			"years without file": func(c *config.Config) {
				c.MedalYears = []int{2016}
				c.MedalTotalsFile = ""
			},
		}
		for name, mutate := range cases {
			convey.Convey("Then "+name+" is rejected", func() {
				cfg := config.New()
				mutate(cfg)
				err := config.Validate(cfg)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}

		convey.Convey("Then a base URL replaces the data dir", func() {
			cfg := config.New()
			cfg.DataDir = ""
			cfg.DataBaseURL = "https://example.org/data"
			convey.So(config.Validate(cfg), convey.ShouldBeNil)
		})
	})
}
