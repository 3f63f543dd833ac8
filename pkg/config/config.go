package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"verigate/pkg/apierror"
	"verigate/pkg/logging"
)

// Environment variable names consulted during resolution.
const (
	EnvClientID       = "VERIGATE_CLIENT_ID"
	EnvClientSecret   = "VERIGATE_CLIENT_SECRET"
	EnvBaseURL        = "VERIGATE_BASE_URL"
	EnvTokenURL       = "VERIGATE_TOKEN_URL"
	EnvTokenTTL       = "VERIGATE_TOKEN_TTL"
	EnvRequestTimeout = "VERIGATE_REQUEST_TIMEOUT"
)

// Built-in defaults, lowest priority in the resolution order.
const (
	DefaultBaseURL        = "https://api.verigate.io/routing/v1"
	DefaultTokenURL       = "https://passport.verigate.io/oauth/token"
	DefaultTokenTTL       = 1799 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

const (
	userConfigDir  = ".config/verigate"
	configFileName = "config.yaml"
)

// Config is the resolved, immutable settings bundle consumed by the token
// manager and dispatcher. It is fixed for the client's lifetime.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string

	// TokenTTL is the fallback token lifetime used when the token endpoint
	// omits expires_in.
	TokenTTL time.Duration

	// RequestTimeout is the fixed per-call timeout for every network
	// operation, token fetches included.
	RequestTimeout time.Duration
}

// Params holds explicit overrides, the highest-priority resolution source.
// Zero values mean "not set".
type Params struct {
	ClientID       string
	ClientSecret   string
	BaseURL        string
	TokenURL       string
	TokenTTL       time.Duration
	RequestTimeout time.Duration

	// ConfigPath points at an alternative config.yaml. When empty the
	// default location under the user's home directory is used.
	ConfigPath string
}

// fileConfig is the on-disk schema of config.yaml.
type fileConfig struct {
	ClientID              string `yaml:"clientId,omitempty"`
	ClientSecret          string `yaml:"clientSecret,omitempty"`
	BaseURL               string `yaml:"baseUrl,omitempty"`
	TokenURL              string `yaml:"tokenUrl,omitempty"`
	TokenTTLSeconds       int    `yaml:"tokenTtlSeconds,omitempty"`
	RequestTimeoutSeconds int    `yaml:"requestTimeoutSeconds,omitempty"`
}

// DefaultConfigPath returns the default config file location,
// ~/.config/verigate/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// Resolve builds a Config from the layered sources, highest priority first:
// explicit params, config file, environment, built-in defaults. Missing
// credentials after all sources are consulted yield a configuration error.
func Resolve(p Params) (Config, error) {
	file, err := loadFile(p.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ClientID:       firstNonEmpty(p.ClientID, file.ClientID, os.Getenv(EnvClientID)),
		ClientSecret:   firstNonEmpty(p.ClientSecret, file.ClientSecret, os.Getenv(EnvClientSecret)),
		BaseURL:        firstNonEmpty(p.BaseURL, file.BaseURL, os.Getenv(EnvBaseURL), DefaultBaseURL),
		TokenURL:       firstNonEmpty(p.TokenURL, file.TokenURL, os.Getenv(EnvTokenURL), DefaultTokenURL),
		TokenTTL:       resolveDuration(p.TokenTTL, file.TokenTTLSeconds, EnvTokenTTL, DefaultTokenTTL),
		RequestTimeout: resolveDuration(p.RequestTimeout, file.RequestTimeoutSeconds, EnvRequestTimeout, DefaultRequestTimeout),
	}

	if cfg.ClientID == "" {
		return Config{}, apierror.Configuration(
			"client ID not found; provide it via parameter, config file, or environment variable (%s)", EnvClientID)
	}
	if cfg.ClientSecret == "" {
		return Config{}, apierror.Configuration(
			"client secret not found; provide it via parameter, config file, or environment variable (%s)", EnvClientSecret)
	}

	return cfg, nil
}

// loadFile reads the config file when it exists. A missing file is not an
// error; a malformed one is.
func loadFile(path string) (fileConfig, error) {
	var cfg fileConfig

	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			logging.Debug("Config", "Skipping config file: %v", err)
			return cfg, nil
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return cfg, apierror.Configuration("config file not found at %s", path)
		}
		return cfg, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, apierror.Configuration("malformed config file %s: %v", path, err)
	}

	logging.Debug("Config", "Loaded configuration from %s", path)
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolveDuration(param time.Duration, fileSeconds int, envKey string, fallback time.Duration) time.Duration {
	if param > 0 {
		return param
	}
	if fileSeconds > 0 {
		return time.Duration(fileSeconds) * time.Second
	}
	if raw := os.Getenv(envKey); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
		logging.Warn("Config", "Ignoring invalid %s value %q", envKey, raw)
	}
	return fallback
}
