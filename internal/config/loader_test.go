package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/shotzone/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.InputPath, convey.ShouldEqual, "Datasets/shots_data.csv")
				convey.So(cfg.OutputFormat, convey.ShouldEqual, "text")
				convey.So(cfg.ExpectedTeams, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SHOTZONE_INPUT_PATH", "/data/game.csv")
			_ = os.Setenv("SHOTZONE_OUTPUT_FORMAT", "json")
			_ = os.Setenv("SHOTZONE_EXPECTED_TEAMS", "2")
			_ = os.Setenv("SHOTZONE_METRICS_FILE", "/tmp/shotzone.prom")
			_ = os.Setenv("SHOTZONE_LOG_LEVEL", "debug")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.InputPath, convey.ShouldEqual, "/data/game.csv")
				convey.So(cfg.OutputFormat, convey.ShouldEqual, "json")
				convey.So(cfg.ExpectedTeams, convey.ShouldEqual, 2)
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/shotzone.prom")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
input_path: "shots.csv"
output_format: json
expected_teams: 2
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("SHOTZONE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.InputPath, convey.ShouldEqual, "shots.csv")
				convey.So(cfg.OutputFormat, convey.ShouldEqual, "json")
				convey.So(cfg.ExpectedTeams, convey.ShouldEqual, 2)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info") // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
input_path: "shots.csv"
expected_teams: 2
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("SHOTZONE_CONFIG", tmpFile)
			_ = os.Setenv("SHOTZONE_INPUT_PATH", "override.csv")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.InputPath, convey.ShouldEqual, "override.csv") // Overridden by env
				convey.So(cfg.ExpectedTeams, convey.ShouldEqual, 2)           // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("SHOTZONE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SHOTZONE_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty input path", func() {
			_ = os.Setenv("SHOTZONE_INPUT_PATH", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "input_path must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown output format", func() {
			_ = os.Setenv("SHOTZONE_OUTPUT_FORMAT", "xml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative team count", func() {
			_ = os.Setenv("SHOTZONE_EXPECTED_TEAMS", "-1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("SHOTZONE_EXPECTED_TEAMS", "two")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, name := range []string{
		"SHOTZONE_CONFIG",
		"SHOTZONE_LOG_LEVEL",
		"SHOTZONE_INPUT_PATH",
		"SHOTZONE_OUTPUT_FORMAT",
		"SHOTZONE_EXPECTED_TEAMS",
		"SHOTZONE_METRICS_FILE",
	} {
		_ = os.Unsetenv(name)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "shotzone-*.yaml")
	if err != nil {
		t.Fatalf("create temp config: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close temp config: %v", err)
	}
	return f.Name()
}
