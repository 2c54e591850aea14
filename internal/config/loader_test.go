package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolySpeedRunners/INF8808-Project/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

// isolate points the .env lookup at an empty file so the working directory
// cannot leak settings into the test.
func isolate(t *testing.T) string {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.env")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvDotEnv, empty)
	t.Setenv(config.EnvConfig, "")
	return dir
}

// setenv sets an env var for the current Convey path only.
func setenv(key, value string) {
	old, had := os.LookupEnv(key)
	_ = os.Setenv(key, value)
	convey.Reset(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		dir := isolate(t)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			setenv("MEDALS_ADDR", ":8080")
			setenv("MEDALS_MIN_YEAR", "1992")
			setenv("MEDALS_WORKER_COUNT", "2")
			setenv("MEDALS_SCALE_KEYS", "tfr, gdp")
			setenv("MEDALS_MEDAL_YEARS", "2016,2020")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MinYear, convey.ShouldEqual, 1992)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 2)
				convey.So(cfg.ScaleKeys, convey.ShouldResemble, []string{"tfr", "gdp"})
				convey.So(cfg.MedalYears, convey.ShouldResemble, []int{2016, 2020})
			})
		})

		convey.Convey("When loading config from a YAML file", func() {
			path := filepath.Join(dir, "medals.yaml")
			yaml := "addr: \":7000\"\n" +
				"olympic_marker: \"[OG]\"\n" +
				"medal_values:\n  gold: 5\n  silver: 3\n" +
				"scale_keys: [population]\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			setenv(config.EnvConfig, path)
			setenv("MEDALS_ADDR", ":7001")

			cfg, err := config.Load(ctx)

			convey.Convey("Then the file applies and env wins over it", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7001")
				convey.So(cfg.OlympicMarker, convey.ShouldEqual, "[OG]")
				convey.So(cfg.MedalValues, convey.ShouldResemble, map[string]int{"gold": 5, "silver": 3})
				convey.So(cfg.ScaleKeys, convey.ShouldResemble, []string{"population"})
			})
		})

		convey.Convey("When a .env file is given", func() {
			path := filepath.Join(dir, "medals.env")
			convey.So(os.WriteFile(path, []byte("MEDALS_QUEUE_SIZE=32\n"), 0o600), convey.ShouldBeNil)
			setenv(config.EnvDotEnv, path)
			convey.Reset(func() { _ = os.Unsetenv("MEDALS_QUEUE_SIZE") })

			cfg, err := config.Load(ctx)

			convey.Convey("Then its variables are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.QueueSize, convey.ShouldEqual, 32)
			})
		})

		convey.Convey("When the YAML file is missing", func() {
			setenv(config.EnvConfig, filepath.Join(dir, "nope.yaml"))
			_, err := config.Load(ctx)

			convey.Convey("Then loading fails", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When env makes the config invalid", func() {
			setenv("MEDALS_LOG_LEVEL", "verbose")
			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
