// Package config builds the settings of the bot once, at process entry.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const (
	Name       = "captionsbot"
	EnvPrefix  = "CAPTIONSBOT"
	configType = "toml"
)

// Config holds application settings
type Config struct {
	Repository   string
	Channel      string
	Languages    []string
	CaptionsDir  string
	Extension    string
	Listen       string
	SinceMinutes int
	MaxVideos    int
	Source       string
	PostgresDSN  string
	Verbose      bool

	MinifluxEndpoint string
	MinifluxAPIKey   string

	// directory holding the secret files
	SecretsDir string
	ConfigFile string
}

// New returns a viper instance with defaults, config file locations and
// environment binding in place. Flags can be bound to it before Load.
func New(configFile string) *viper.Viper {
	configDir := filepath.Join(xdg.ConfigHome, Name)

	v := viper.New()
	v.SetDefault("repository", "jlm2017/jlm-video-subtitles")
	v.SetDefault("channel", "UCk-_PEY3iC6DIGJKuoEe9bw")
	v.SetDefault("languages", []string{"fr", "en", "de"})
	v.SetDefault("captions_dir", "subtitles")
	v.SetDefault("extension", "vtt")
	v.SetDefault("listen", ":8080")
	v.SetDefault("since_minutes", 120)
	v.SetDefault("max_videos", 10)
	v.SetDefault("source", "search")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("verbose", false)
	v.SetDefault("miniflux_endpoint", "http://localhost/v1")
	v.SetDefault("miniflux_apikey", "")
	v.SetDefault("secrets_dir", configDir)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType(configType)
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file, when there is one, and builds the Config.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Repository:       v.GetString("repository"),
		Channel:          v.GetString("channel"),
		Languages:        v.GetStringSlice("languages"),
		CaptionsDir:      v.GetString("captions_dir"),
		Extension:        v.GetString("extension"),
		Listen:           v.GetString("listen"),
		SinceMinutes:     v.GetInt("since_minutes"),
		MaxVideos:        v.GetInt("max_videos"),
		Source:           v.GetString("source"),
		PostgresDSN:      v.GetString("postgres_dsn"),
		Verbose:          v.GetBool("verbose"),
		MinifluxEndpoint: v.GetString("miniflux_endpoint"),
		MinifluxAPIKey:   v.GetString("miniflux_apikey"),
		SecretsDir:       v.GetString("secrets_dir"),
		ConfigFile:       v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Repository == "" {
		return errors.New("no repository configured")
	}
	if c.SinceMinutes <= 0 {
		return fmt.Errorf("since_minutes must be positive, got %d", c.SinceMinutes)
	}
	if c.MaxVideos < 1 || c.MaxVideos > 50 {
		return fmt.Errorf("max_videos must be between 1 and 50, got %d", c.MaxVideos)
	}
	switch c.Source {
	case "search", "rss", "miniflux":
	default:
		return fmt.Errorf("unknown video source %q", c.Source)
	}
	return nil
}

// EnsureDir creates the directory holding the secrets.
func (c *Config) EnsureDir() error {
	if err := os.MkdirAll(c.SecretsDir, 0700); err != nil {
		return fmt.Errorf("create %s: %w", c.SecretsDir, err)
	}
	return nil
}
