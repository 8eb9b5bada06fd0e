package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Backend.URL != "http://127.0.0.1:5000" {
			t.Errorf("expected backend URL http://127.0.0.1:5000, got %s", config.Backend.URL)
		}

		if config.Server.Port != 5000 {
			t.Errorf("expected server port 5000, got %d", config.Server.Port)
		}

		if config.Web.Port != 3000 {
			t.Errorf("expected web port 3000, got %d", config.Web.Port)
		}

		if config.Database.Path != "./followback.db" {
			t.Errorf("expected database path ./followback.db, got %s", config.Database.Path)
		}

		if config.Server.MaxUploadBytes() != 32<<20 {
			t.Errorf("expected 32MiB upload cap, got %d", config.Server.MaxUploadBytes())
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Setenv(BackendURLEnv, "")
		t.Setenv(PortEnv, "")
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[backend]
url = "https://followback.example.com"
token = "secret"

[server]
port = 8080
api_token = "server-secret"

[database]
path = ""
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Backend.URL != "https://followback.example.com" {
			t.Errorf("expected backend URL from file, got %s", config.Backend.URL)
		}
		if config.Backend.Token != "secret" {
			t.Errorf("expected backend token from file, got %s", config.Backend.Token)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}
		if config.Server.MaxUploadMB != 32 {
			t.Errorf("expected default max_upload_mb to survive partial file, got %d", config.Server.MaxUploadMB)
		}
		if config.Database.Path != "" {
			t.Errorf("expected database disabled, got %s", config.Database.Path)
		}
	})

	t.Run("environment overrides backend URL", func(t *testing.T) {
		t.Setenv(BackendURLEnv, "http://env.example.com:9000")
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Backend.URL != "http://env.example.com:9000" {
			t.Errorf("expected env backend URL, got %s", config.Backend.URL)
		}
	})

	t.Run("environment overrides server port", func(t *testing.T) {
		t.Setenv(PortEnv, "10000")
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if config.Server.Port != 10000 {
			t.Errorf("expected env port 10000, got %d", config.Server.Port)
		}

		t.Setenv(PortEnv, "not-a-port")
		config, err = LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if config.Server.Port != 5000 {
			t.Errorf("expected default port for unparsable PORT, got %d", config.Server.Port)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Setenv(BackendURLEnv, "")
		t.Setenv(PortEnv, "")
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[server]\nport = 70000\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
