package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Route mirrors one entry of the [[routes]] config table.
type Route struct {
	Repository string `mapstructure:"repository"`
	TeamID     string `mapstructure:"team_id"`
	BoardName  string `mapstructure:"board_name"`
}

// Config is everything the process needs, resolved once at startup and
// passed to constructors. Nothing reads viper (or the environment) after
// Load returns.
type Config struct {
	Port        string
	SiteURL     string
	AccessToken string
	Routes      []Route
}

// Load reads config.toml from the working directory, with environment
// variables taking over for deployment secrets. The file is optional;
// a site URL and token from the environment are enough to run.
func Load() (Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.BindEnv("server.port", "APP_PORT")
	viper.BindEnv("mattermost.site_url", "MATTERMOST_SITEURL")
	viper.BindEnv("mattermost.access_token", "ACCESS_TOKEN")

	cfg := Config{
		Port:        viper.GetString("server.port"),
		SiteURL:     viper.GetString("mattermost.site_url"),
		AccessToken: viper.GetString("mattermost.access_token"),
	}
	if cfg.Port == "" {
		cfg.Port = "4000"
	}
	if cfg.SiteURL == "" {
		return Config{}, errors.New("mattermost.site_url (or MATTERMOST_SITEURL) is required")
	}
	if cfg.AccessToken == "" {
		return Config{}, errors.New("mattermost.access_token (or ACCESS_TOKEN) is required")
	}

	if err := viper.UnmarshalKey("routes", &cfg.Routes); err != nil {
		return Config{}, fmt.Errorf("routes table is not configured properly: %w", err)
	}

	return cfg, nil
}
