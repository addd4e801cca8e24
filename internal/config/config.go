package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the audiovault server and its dependencies.
type Config struct {
	// Listen is the address the audiovault server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// ServerURL is the base URL of the audiovault server.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	// CORSOrigins is the list of allowed CORS origins.
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	// Auth holds the token signing configuration.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`
	// Yandex holds the Yandex OAuth configuration.
	Yandex *YandexConfig `yaml:"yandex" mapstructure:"yandex"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Storage holds the audio file storage configuration.
	Storage *StorageConfig `yaml:"storage" mapstructure:"storage"`
}

// AuthConfig holds the token signing configuration for the audiovault server.
type AuthConfig struct {
	// Secret is the shared secret used to sign access tokens.
	Secret string `yaml:"secret" mapstructure:"secret"`
	// TokenTTL is the lifetime of an issued access token.
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
}

// YandexConfig holds the Yandex OAuth configuration.
type YandexConfig struct {
	// ClientID is the Yandex OAuth client ID.
	ClientID string `yaml:"client_id" mapstructure:"client_id"`
	// ClientSecret is the Yandex OAuth client secret.
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	// RedirectURL is the redirect URL for the OAuth flow.
	RedirectURL string `yaml:"redirect_url" mapstructure:"redirect_url"`
	// AuthURL is the Yandex authorization endpoint.
	AuthURL string `yaml:"auth_url" mapstructure:"auth_url"`
	// TokenURL is the Yandex token endpoint.
	TokenURL string `yaml:"token_url" mapstructure:"token_url"`
	// InfoURL is the Yandex profile endpoint.
	InfoURL string `yaml:"info_url" mapstructure:"info_url"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the database file.
	Path string `yaml:"path" mapstructure:"path"`
	// PoolSize is the maximum number of open database connections.
	PoolSize int `yaml:"pool_size" mapstructure:"pool_size"`
	// PoolMaxLifetime is the maximum age of a pooled connection before it is recycled.
	PoolMaxLifetime time.Duration `yaml:"pool_max_lifetime" mapstructure:"pool_max_lifetime"`
}

// StorageConfig holds the audio file storage configuration.
type StorageConfig struct {
	// MediaDir is the directory where uploaded audio files are stored.
	MediaDir string `yaml:"media_dir" mapstructure:"media_dir"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("AUDIOVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.audiovault")
		v.AddConfigPath("/etc/audiovault")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, rely on defaults and env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with AUDIOVAULT_ prefix will override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The OAuth redirect URL defaults to the callback route on the server's
	// own base URL.
	if c.Yandex != nil && c.Yandex.RedirectURL == "" && c.ServerURL != "" {
		c.Yandex.RedirectURL = strings.TrimRight(c.ServerURL, "/") + "/auth/callback"
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:8000")
	v.SetDefault("server_url", "http://localhost:8000")
	v.SetDefault("cors_origins", []string{"*"})

	// Auth defaults
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", 30*time.Minute)

	// Yandex defaults
	v.SetDefault("yandex.client_id", "")
	v.SetDefault("yandex.client_secret", "")
	v.SetDefault("yandex.auth_url", "https://oauth.yandex.ru/authorize")
	v.SetDefault("yandex.token_url", "https://oauth.yandex.ru/token")
	v.SetDefault("yandex.info_url", "https://login.yandex.ru/info")

	// Database defaults
	v.SetDefault("database.path", "data/audiovault.db")
	v.SetDefault("database.pool_size", 16)
	v.SetDefault("database.pool_max_lifetime", 20*time.Minute)

	// Storage defaults
	v.SetDefault("storage.media_dir", "media/audio")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing audiovault config")
	}

	if c.Auth == nil || c.Auth.Secret == "" {
		return fmt.Errorf("auth secret is required")
	}

	if c.Yandex == nil {
		return fmt.Errorf("missing yandex config")
	}
	if c.Yandex.ClientID == "" {
		return fmt.Errorf("yandex client ID is required")
	}
	if c.Yandex.ClientSecret == "" {
		return fmt.Errorf("yandex client secret is required")
	}
	if c.Yandex.RedirectURL == "" {
		return fmt.Errorf("yandex redirect URL is required")
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Storage == nil || c.Storage.MediaDir == "" {
		return fmt.Errorf("storage media dir is required")
	}

	return nil
}
