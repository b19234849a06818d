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

		if config.Database != "./3D_Models.db" {
			t.Errorf("expected database path ./3D_Models.db, got %s", config.Database)
		}

		if config.LogLevel != "info" {
			t.Errorf("expected log level info, got %s", config.LogLevel)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database != DefaultConfig().Database {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig JSON", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")
		body := `{"database": "/custom/models.db", "sql_dir": "/custom/sql", "log_level": "debug"}`
		if err := os.WriteFile(configPath, []byte(body), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database != "/custom/models.db" {
			t.Errorf("expected database /custom/models.db, got %s", config.Database)
		}
		if config.SQLDir != "/custom/sql" {
			t.Errorf("expected sql dir /custom/sql, got %s", config.SQLDir)
		}
		if config.LogLevel != "debug" {
			t.Errorf("expected log level debug, got %s", config.LogLevel)
		}
	})

	t.Run("LoadConfig TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		body := "database = \"/custom/models.db\"\nlog_level = \"warn\"\n"
		if err := os.WriteFile(configPath, []byte(body), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database != "/custom/models.db" {
			t.Errorf("expected database /custom/models.db, got %s", config.Database)
		}
		if config.LogLevel != "warn" {
			t.Errorf("expected log level warn, got %s", config.LogLevel)
		}
	})

	t.Run("LoadConfig missing database key", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(configPath, []byte(`{"log_level": "info"}`), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig malformed", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(configPath, []byte(`{"database": `), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestResolveDatabasePath(t *testing.T) {
	t.Run("existing default wins", func(t *testing.T) {
		dir := t.TempDir()
		defaultDB := filepath.Join(dir, DefaultDatabaseName)
		if err := os.WriteFile(defaultDB, nil, 0644); err != nil {
			t.Fatal(err)
		}
		configPath := filepath.Join(dir, DefaultConfigName)
		if err := os.WriteFile(configPath, []byte(`{"database": "/elsewhere.db"}`), 0644); err != nil {
			t.Fatal(err)
		}

		path, loc, config, err := ResolveDatabasePath(defaultDB, configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != defaultDB || loc != LocationDefault {
			t.Errorf("expected %s (default), got %s (%s)", defaultDB, path, loc)
		}
		if config != nil {
			t.Error("config should not be read when the default database exists")
		}
	})

	t.Run("config used when default missing", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, DefaultConfigName)
		if err := os.WriteFile(configPath, []byte(`{"database": "/elsewhere.db"}`), 0644); err != nil {
			t.Fatal(err)
		}

		path, loc, config, err := ResolveDatabasePath(filepath.Join(dir, DefaultDatabaseName), configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "/elsewhere.db" || loc != LocationConfig {
			t.Errorf("expected /elsewhere.db (config), got %s (%s)", path, loc)
		}
		if config == nil {
			t.Error("expected loaded config")
		}
	})

	t.Run("new database when nothing exists", func(t *testing.T) {
		dir := t.TempDir()
		defaultDB := filepath.Join(dir, DefaultDatabaseName)

		path, loc, _, err := ResolveDatabasePath(defaultDB, filepath.Join(dir, DefaultConfigName))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != defaultDB || loc != LocationNew {
			t.Errorf("expected %s (new), got %s (%s)", defaultDB, path, loc)
		}
	})
}

func TestVersionDescriptor(t *testing.T) {
	tc := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "valid", body: `{"version": 2}`, want: 2},
		{name: "zero", body: `{"version": 0}`, wantErr: true},
		{name: "missing key", body: `{}`, wantErr: true},
		{name: "not json", body: `version=2`, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersionDescriptor([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got version %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseVersionDescriptor() = %d, want %d", got, tt.want)
			}
		})
	}
}
