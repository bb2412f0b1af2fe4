package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Global config, set once at startup.
var (
	globalServerConfig *ServerConfig
	configMutex        sync.RWMutex
)

// SetGlobalServerConfig sets the process-wide server configuration.
func SetGlobalServerConfig(config *ServerConfig) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalServerConfig = config
}

// GetGlobalServerConfig returns the process-wide server configuration.
func GetGlobalServerConfig() *ServerConfig {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalServerConfig
}

// ServerConfig is the full server configuration.
type ServerConfig struct {
	App struct {
		Name           string        `yaml:"name"`
		Mode           string        `yaml:"mode"`
		Listen         string        `yaml:"listen"`
		ReadTimeout    time.Duration `yaml:"read_timeout"`
		WriteTimeout   time.Duration `yaml:"write_timeout"`
		IdleTimeout    time.Duration `yaml:"idle_timeout"`
		MaxHeaderBytes int           `yaml:"max_header_bytes"`
	} `yaml:"app"`

	Auth struct {
		JWTSecret        string        `yaml:"jwt_secret"`
		TokenExpiry      time.Duration `yaml:"token_expiry"`
		AdminUsername    string        `yaml:"admin_username"`
		AdminPassword    string        `yaml:"admin_password"`
		OperatorUsername string        `yaml:"operator_username"`
		OperatorPassword string        `yaml:"operator_password"`
		LoginRate        int           `yaml:"login_rate"`
		LoginBurst       int           `yaml:"login_burst"`
	} `yaml:"auth"`

	Storage struct {
		DataDir        string `yaml:"data_dir"`
		UsersFile      string `yaml:"users_file"`
		ZonesFile      string `yaml:"zones_file"`
		ConfigFile     string `yaml:"config_file"`
		ThresholdsFile string `yaml:"thresholds_file"`
	} `yaml:"storage"`

	Video struct {
		FramesDir     string        `yaml:"frames_dir"`
		FrameInterval time.Duration `yaml:"frame_interval"`
	} `yaml:"video"`
}

// findConfigFile looks for the config file in the common run locations.
func findConfigFile(filename string) (string, error) {
	candidates := []string{
		filename,
		filepath.Join("configs", filepath.Base(filename)),
		filepath.Join("..", filename),
		filepath.Join("..", "..", filename),
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("config file not found: %s", filename)
}

// LoadServerConfig loads the server configuration from a YAML file,
// applying defaults and environment overrides for secrets. A .env file in
// the working directory is honored when present.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	// Best effort; absence of a .env file is normal.
	_ = godotenv.Load()

	path, err := findConfigFile(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := defaultServerConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret must be set (config or CROWDWATCH_JWT_SECRET)")
	}

	return cfg, nil
}

// defaultServerConfig returns a config with workable defaults for every
// field the YAML may omit.
func defaultServerConfig() *ServerConfig {
	cfg := &ServerConfig{}
	cfg.App.Name = "CrowdWatch"
	cfg.App.Mode = "release"
	cfg.App.Listen = ":8080"
	cfg.App.ReadTimeout = 15 * time.Second
	cfg.App.WriteTimeout = 0 // video feed is a long-lived response
	cfg.App.IdleTimeout = 60 * time.Second
	cfg.App.MaxHeaderBytes = 1

	cfg.Auth.TokenExpiry = 2 * time.Hour
	cfg.Auth.AdminUsername = "admin"
	cfg.Auth.OperatorUsername = "operator"
	cfg.Auth.LoginRate = 5
	cfg.Auth.LoginBurst = 10

	cfg.Storage.DataDir = "data"
	cfg.Storage.UsersFile = "users.json"
	cfg.Storage.ZonesFile = "zones.json"
	cfg.Storage.ConfigFile = "config.json"
	cfg.Storage.ThresholdsFile = "thresholds.json"

	cfg.Video.FramesDir = "video/frames"
	cfg.Video.FrameInterval = 100 * time.Millisecond

	return cfg
}

// applyEnvOverrides lets secrets come from the environment instead of the
// config file.
func applyEnvOverrides(cfg *ServerConfig) {
	if v := os.Getenv("CROWDWATCH_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("CROWDWATCH_ADMIN_PASSWORD"); v != "" {
		cfg.Auth.AdminPassword = v
	}
	if v := os.Getenv("CROWDWATCH_OPERATOR_PASSWORD"); v != "" {
		cfg.Auth.OperatorPassword = v
	}
	if v := os.Getenv("CROWDWATCH_LISTEN"); v != "" {
		cfg.App.Listen = v
	}
}

// StoragePath resolves one of the persisted document filenames against the
// data directory.
func (c *ServerConfig) StoragePath(filename string) string {
	return filepath.Join(c.Storage.DataDir, filename)
}
