package config

import (
	"testing"
	"time"
)

var envVars = []string{
	"SERVER_PORT",
	"DATA_SOURCE",
	"MOCK_FETCH_DELAY",
	"MOCK_CREATE_DELAY",
	"SEED_FILE",
	"DB_HOST",
	"DB_PORT",
	"DB_USER",
	"DB_NAME",
	"DB_AUTO_MIGRATE",
	"SQLITE_PATH",
	"REDIS_ADDR",
	"REDIS_DB",
	"REDIS_NAMESPACE",
	"STALE_TIME",
	"LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envVars {
		t.Setenv(env, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.ServerPort != "8080" {
			t.Errorf("ServerPort = %v, want 8080", cfg.ServerPort)
		}
		if cfg.DataSource != SourceMock {
			t.Errorf("DataSource = %v, want mock", cfg.DataSource)
		}
		if cfg.MockFetchDelay != 800*time.Millisecond {
			t.Errorf("MockFetchDelay = %v, want 800ms", cfg.MockFetchDelay)
		}
		if cfg.MockCreateDelay != time.Second {
			t.Errorf("MockCreateDelay = %v, want 1s", cfg.MockCreateDelay)
		}
		if cfg.StaleTime != 5*time.Minute {
			t.Errorf("StaleTime = %v, want 5m", cfg.StaleTime)
		}
		if cfg.DBName != "content_hub" {
			t.Errorf("DBName = %v, want content_hub", cfg.DBName)
		}
		if cfg.DBAutoMigrate {
			t.Errorf("DBAutoMigrate = true, want false")
		}
		if cfg.RedisNamespace != "contenthub" {
			t.Errorf("RedisNamespace = %v, want contenthub", cfg.RedisNamespace)
		}
		if cfg.DefaultUsername != "Anonymous User" {
			t.Errorf("DefaultUsername = %v, want Anonymous User", cfg.DefaultUsername)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
		}
	})

	t.Run("custom values from environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("DATA_SOURCE", "Redis")
		t.Setenv("REDIS_ADDR", "cache:6380")
		t.Setenv("REDIS_DB", "3")
		t.Setenv("REDIS_NAMESPACE", "hub")
		t.Setenv("STALE_TIME", "30s")
		t.Setenv("DB_AUTO_MIGRATE", "true")
		t.Setenv("SEED_FILE", "/etc/hub/seed.yaml")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.ServerPort != "9090" {
			t.Errorf("ServerPort = %v, want 9090", cfg.ServerPort)
		}
		if cfg.DataSource != SourceRedis {
			t.Errorf("DataSource = %v, want redis", cfg.DataSource)
		}
		if cfg.RedisAddr != "cache:6380" {
			t.Errorf("RedisAddr = %v, want cache:6380", cfg.RedisAddr)
		}
		if cfg.RedisDB != 3 {
			t.Errorf("RedisDB = %v, want 3", cfg.RedisDB)
		}
		if cfg.RedisNamespace != "hub" {
			t.Errorf("RedisNamespace = %v, want hub", cfg.RedisNamespace)
		}
		if cfg.StaleTime != 30*time.Second {
			t.Errorf("StaleTime = %v, want 30s", cfg.StaleTime)
		}
		if !cfg.DBAutoMigrate {
			t.Errorf("DBAutoMigrate = false, want true")
		}
		if cfg.SeedFile != "/etc/hub/seed.yaml" {
			t.Errorf("SeedFile = %v, want /etc/hub/seed.yaml", cfg.SeedFile)
		}
	})

	t.Run("malformed numbers fall back to defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_PORT", "not-a-port")
		t.Setenv("STALE_TIME", "soon")
		t.Setenv("DB_AUTO_MIGRATE", "maybe")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.DBPort != 5432 {
			t.Errorf("DBPort = %v, want 5432", cfg.DBPort)
		}
		if cfg.StaleTime != 5*time.Minute {
			t.Errorf("StaleTime = %v, want 5m", cfg.StaleTime)
		}
		if cfg.DBAutoMigrate {
			t.Errorf("DBAutoMigrate = true, want false")
		}
	})
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown data source", env: map[string]string{"DATA_SOURCE": "mongo"}},
		{name: "negative mock delay", env: map[string]string{"MOCK_FETCH_DELAY": "-1s"}},
		{name: "zero stale time", env: map[string]string{"STALE_TIME": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Errorf("Load() expected error")
			}
		})
	}
}

func TestWithSource(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	next, err := cfg.WithSource("SQLite")
	if err != nil {
		t.Fatalf("WithSource() error = %v", err)
	}
	if next.DataSource != SourceSQLite {
		t.Errorf("DataSource = %v, want sqlite", next.DataSource)
	}
	if cfg.DataSource != SourceMock {
		t.Errorf("original DataSource = %v, want mock", cfg.DataSource)
	}

	if _, err := cfg.WithSource("etcd"); err == nil {
		t.Error("WithSource(etcd) expected error")
	}
}
