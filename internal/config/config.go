// Package config loads emojify settings from YAML profiles with Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/antimoji/emojify/internal/types"
)

const (
	// DefaultProfileName is used when no profile is requested
	DefaultProfileName = "default"
	// EnvPrefix prefixes environment overrides such as EMOJIFY_THEME
	EnvPrefix = "EMOJIFY"
	// DefaultMaxBodyBytes caps HTTP request bodies at 1 MiB
	DefaultMaxBodyBytes = 1 << 20
)

// Config represents the complete application configuration.
type Config struct {
	Profiles map[string]Profile `yaml:"profiles" json:"profiles"`
}

// Profile represents a named set of rendering and service settings.
type Profile struct {
	// Rendering
	AssetHost string `yaml:"asset_host" json:"asset_host" mapstructure:"asset_host"`
	Theme     string `yaml:"theme" json:"theme" mapstructure:"theme"`
	Autoplay  bool   `yaml:"autoplay" json:"autoplay" mapstructure:"autoplay"`

	// Data files
	CustomEmojiFile string `yaml:"custom_emoji_file" json:"custom_emoji_file" mapstructure:"custom_emoji_file"`
	CatalogFile     string `yaml:"catalog_file" json:"catalog_file" mapstructure:"catalog_file"`

	// HTTP service
	ListenAddr   string  `yaml:"listen_addr" json:"listen_addr" mapstructure:"listen_addr"`
	RateLimit    float64 `yaml:"rate_limit" json:"rate_limit" mapstructure:"rate_limit"`
	RateBurst    int     `yaml:"rate_burst" json:"rate_burst" mapstructure:"rate_burst"`
	MaxBodyBytes int64   `yaml:"max_body_bytes" json:"max_body_bytes" mapstructure:"max_body_bytes"`

	// Performance
	MaxWorkers int `yaml:"max_workers" json:"max_workers" mapstructure:"max_workers"`
}

// profileKeys lists every profile setting in file order.
var profileKeys = []string{
	"asset_host",
	"theme",
	"autoplay",
	"custom_emoji_file",
	"catalog_file",
	"listen_addr",
	"rate_limit",
	"rate_burst",
	"max_body_bytes",
	"max_workers",
}

// DefaultProfile returns the settings used when nothing is configured.
func DefaultProfile() Profile {
	return Profile{
		AssetHost:    "",
		Theme:        string(types.ThemeSystem),
		Autoplay:     false,
		ListenAddr:   ":8080",
		RateLimit:    50,
		RateBurst:    100,
		MaxBodyBytes: DefaultMaxBodyBytes,
		MaxWorkers:   0, // NumCPU
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Profiles: map[string]Profile{
			DefaultProfileName: DefaultProfile(),
		},
	}
}

// LoadConfig loads configuration from the specified file path. Settings a
// profile leaves out take their default values.
func LoadConfig(configPath string) types.Result[Config] {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return types.Err[Config](fmt.Errorf("failed to read config %s: %w", configPath, err))
	}

	return fromViper(v)
}

// Discover loads the config file at configPath, or searches
// $HOME/.config/emojify, $HOME and the working directory for config.yaml when
// configPath is empty. A missing file yields DefaultConfig.
func Discover(configPath string) types.Result[Config] {
	if configPath != "" {
		return LoadConfig(configPath)
	}

	v := viper.New()
	for _, dir := range SearchPaths() {
		v.AddConfigPath(dir)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return types.Ok(DefaultConfig())
		}
		return types.Err[Config](fmt.Errorf("failed to read config: %w", err))
	}

	return fromViper(v)
}

// SearchPaths returns the directories searched for config.yaml.
func SearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "emojify"), home)
	}
	return append(paths, ".")
}

func fromViper(v *viper.Viper) types.Result[Config] {
	config := Config{
		Profiles: make(map[string]Profile),
	}

	for name := range v.GetStringMap("profiles") {
		config.Profiles[name] = loadProfile(v, "profiles."+name)
	}
	if len(config.Profiles) == 0 {
		config.Profiles[DefaultProfileName] = DefaultProfile()
	}

	return types.Ok(config)
}

// loadProfile reads one profile, filling unset keys from DefaultProfile.
func loadProfile(v *viper.Viper, prefix string) Profile {
	defaults := DefaultProfile()
	v.SetDefault(prefix+".asset_host", defaults.AssetHost)
	v.SetDefault(prefix+".theme", defaults.Theme)
	v.SetDefault(prefix+".autoplay", defaults.Autoplay)
	v.SetDefault(prefix+".listen_addr", defaults.ListenAddr)
	v.SetDefault(prefix+".rate_limit", defaults.RateLimit)
	v.SetDefault(prefix+".rate_burst", defaults.RateBurst)
	v.SetDefault(prefix+".max_body_bytes", defaults.MaxBodyBytes)
	v.SetDefault(prefix+".max_workers", defaults.MaxWorkers)

	return Profile{
		AssetHost:       v.GetString(prefix + ".asset_host"),
		Theme:           v.GetString(prefix + ".theme"),
		Autoplay:        v.GetBool(prefix + ".autoplay"),
		CustomEmojiFile: v.GetString(prefix + ".custom_emoji_file"),
		CatalogFile:     v.GetString(prefix + ".catalog_file"),
		ListenAddr:      v.GetString(prefix + ".listen_addr"),
		RateLimit:       v.GetFloat64(prefix + ".rate_limit"),
		RateBurst:       v.GetInt(prefix + ".rate_burst"),
		MaxBodyBytes:    v.GetInt64(prefix + ".max_body_bytes"),
		MaxWorkers:      v.GetInt(prefix + ".max_workers"),
	}
}

// ApplyEnv overrides profile settings from EMOJIFY_* environment variables,
// for example EMOJIFY_ASSET_HOST or EMOJIFY_RATE_LIMIT.
func ApplyEnv(profile Profile) Profile {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range profileKeys {
		if !v.IsSet(key) {
			continue
		}
		switch key {
		case "asset_host":
			profile.AssetHost = v.GetString(key)
		case "theme":
			profile.Theme = v.GetString(key)
		case "autoplay":
			profile.Autoplay = v.GetBool(key)
		case "custom_emoji_file":
			profile.CustomEmojiFile = v.GetString(key)
		case "catalog_file":
			profile.CatalogFile = v.GetString(key)
		case "listen_addr":
			profile.ListenAddr = v.GetString(key)
		case "rate_limit":
			profile.RateLimit = v.GetFloat64(key)
		case "rate_burst":
			profile.RateBurst = v.GetInt(key)
		case "max_body_bytes":
			profile.MaxBodyBytes = v.GetInt64(key)
		case "max_workers":
			profile.MaxWorkers = v.GetInt(key)
		}
	}

	return profile
}

// GetProfile retrieves a specific profile from the configuration.
func GetProfile(config Config, profileName string) types.Result[Profile] {
	if profileName == "" {
		profileName = DefaultProfileName
	}

	profile, exists := config.Profiles[profileName]
	if !exists {
		return types.Err[Profile](fmt.Errorf("profile not found: %s", profileName))
	}

	return types.Ok(profile)
}
