package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"volumeapi/internal/config"

	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"VOLUMES_CONFIG",
	"VOLUMES_ADDR",
	"VOLUMES_STORE_DRIVER",
	"VOLUMES_POSTGRES_DSN",
	"VOLUMES_STORE_TIMEOUT",
	"VOLUMES_CORS_ORIGINS",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "volumes.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it listens on the fixed service port and uses mongo", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":3000")
			convey.So(cfg.StoreDriver, convey.ShouldEqual, config.DriverMongo)
			convey.So(cfg.StoreTimeout, convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"*"})
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When only defaults are present", func() {
			cfg, err := config.Load()

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":3000")
			convey.So(cfg.MongoDatabase, convey.ShouldEqual, "volumes")
		})

		convey.Convey("When environment variables are set", func() {
			_ = os.Setenv("VOLUMES_ADDR", ":8081")
			_ = os.Setenv("VOLUMES_STORE_DRIVER", "postgres")
			_ = os.Setenv("VOLUMES_POSTGRES_DSN", "postgres://u:p@db:5432/v")
			_ = os.Setenv("VOLUMES_STORE_TIMEOUT", "750ms")

			cfg, err := config.Load()

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
			convey.So(cfg.StoreDriver, convey.ShouldEqual, config.DriverPostgres)
			convey.So(cfg.PostgresDSN, convey.ShouldEqual, "postgres://u:p@db:5432/v")
			convey.So(cfg.StoreTimeout, convey.ShouldEqual, 750*time.Millisecond)
		})

		convey.Convey("When a YAML file is named and env overrides part of it", func() {
			path := writeConfigFile(t, `
addr: ":9090"
store_driver: memory
log_level: debug
cors_origins:
  - http://localhost:5173
`)
			_ = os.Setenv("VOLUMES_CONFIG", path)
			_ = os.Setenv("VOLUMES_ADDR", ":9191")

			cfg, err := config.Load()

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9191")
			convey.So(cfg.StoreDriver, convey.ShouldEqual, config.DriverMemory)
			convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"http://localhost:5173"})
		})

		convey.Convey("When the named file does not exist", func() {
			_ = os.Setenv("VOLUMES_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load()

			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the driver is unknown", func() {
			_ = os.Setenv("VOLUMES_STORE_DRIVER", "cassandra")

			_, err := config.Load()

			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, ".env"), []byte("VOLUMES_ADDR=:7000\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	_ = os.Setenv("VOLUMES_ADDR", ":7001")
	t.Cleanup(func() { _ = os.Unsetenv("VOLUMES_ADDR") })

	cwd, _ := os.Getwd()
	_ = os.Chdir(tmp)
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	config.LoadEnvFiles()

	if got := os.Getenv("VOLUMES_ADDR"); got != ":7001" {
		t.Fatalf("expected existing env to win, got %q", got)
	}
}
