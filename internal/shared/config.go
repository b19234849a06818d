package shared

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.json
var exampleConf []byte

// DefaultDatabaseName is the file looked up beside the executable.
const DefaultDatabaseName = "3D_Models.db"

// DefaultConfigName is the config file looked up beside the executable.
const DefaultConfigName = "config.json"

// Config represents the application configuration loaded from a JSON (or TOML) file.
type Config struct {
	Database string `json:"database" toml:"database"`
	SQLDir   string `json:"sql_dir,omitempty" toml:"sql_dir"`
	LogLevel string `json:"log_level,omitempty" toml:"log_level"`
}

// LoadConfig reads and parses a configuration file from the specified path.
//
// Files ending in .toml are decoded as TOML; everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("%w: failed to parse config: %w", ErrInvalidConfig, err)
		}
	} else if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %w", ErrInvalidConfig, err)
	}

	if config.Database == "" {
		return nil, fmt.Errorf("%w: missing \"database\" key in %s", ErrInvalidConfig, path)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := json.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ExecutableDir returns the directory holding the running binary.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// DatabaseLocation describes where the database path came from.
type DatabaseLocation int

const (
	LocationDefault DatabaseLocation = iota // existing database beside the executable
	LocationConfig                          // "database" key of the config file
	LocationNew                             // nothing found, a new database will be created
)

func (l DatabaseLocation) String() string {
	switch l {
	case LocationDefault:
		return "default"
	case LocationConfig:
		return "config"
	case LocationNew:
		return "new"
	default:
		return "unknown"
	}
}

// ResolveDatabasePath picks the database file to open.
//
// An existing defaultDB wins. Otherwise the config file is consulted if it exists, and its "database" key is used.
// When neither exists the default path is returned with [LocationNew] so the caller knows to build the schema.
// The loaded config is returned when one was read.
func ResolveDatabasePath(defaultDB, configPath string) (string, DatabaseLocation, *Config, error) {
	if FileExists(defaultDB) {
		return defaultDB, LocationDefault, nil, nil
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadConfig(configPath)
			if err != nil {
				return "", LocationConfig, nil, err
			}
			return config.Database, LocationConfig, config, nil
		}
	}

	return defaultDB, LocationNew, nil, nil
}

// VersionDescriptor is the {"version": N} document shipped next to the update script.
type VersionDescriptor struct {
	Version int `json:"version"`
}

// ParseVersionDescriptor decodes a version descriptor document.
func ParseVersionDescriptor(data []byte) (int, error) {
	var vd VersionDescriptor
	if err := json.Unmarshal(data, &vd); err != nil {
		return 0, fmt.Errorf("%w: failed to parse version descriptor: %w", ErrInvalidConfig, err)
	}
	if vd.Version < 1 {
		return 0, fmt.Errorf("%w: version descriptor must be a positive integer, got %d", ErrInvalidConfig, vd.Version)
	}
	return vd.Version, nil
}
