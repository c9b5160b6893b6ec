package configuration

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"lunchbot/internal/configuration/properties"
	"lunchbot/internal/configuration/util"
)

const (
	DefaultConfigDir = "internal/static"
	ConfigDirEnv     = "LUNCHBOT_CONFIG_DIR"
	ProfileEnv       = "LUNCHBOT_PROFILE"
)

func Load() (*properties.Config, error) {
	if err := util.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		return nil, err
	}

	dir := os.Getenv(ConfigDirEnv)
	if dir == "" {
		dir = DefaultConfigDir
	}

	return LoadFrom(dir)
}

// LoadFrom reads application.yml, then overlays application-<profile>.yml. The
// profile can be forced with LUNCHBOT_PROFILE.
func LoadFrom(dir string) (*properties.Config, error) {
	cfg := defaults()

	if err := util.DecodeYaml(dir, "application", cfg); err != nil {
		slog.Error("Error parsing base config", "error", err)
		return nil, err
	}

	if p := os.Getenv(ProfileEnv); p != "" {
		cfg.Application.Profile = p
	}
	if cfg.Application.Profile == "" {
		return nil, errors.New("app.profile is required")
	}

	if err := util.DecodeYaml(dir, "application-"+cfg.Application.Profile, cfg); err != nil {
		slog.Error("Error loading profile config", "profile", cfg.Application.Profile, "error", err)
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *properties.Config {
	return &properties.Config{
		Application: properties.ApplicationConfigProperties{LogLevel: "info"},
		Storage: properties.StorageConfigProperties{
			Backend: "json",
			Path:    "restaurants.json",
		},
		Command: properties.CommandConfigProperties{
			AnnounceDelay: 1000,
			RevealDelay:   1000,
		},
		Metrics: properties.MetricsConfigProperties{Address: ":9090"},
		Health:  properties.HealthConfigProperties{Network: "tcp", Address: ":9091"},
	}
}

func validate(cfg *properties.Config) error {
	switch cfg.Storage.Backend {
	case "json", "wal":
	default:
		return fmt.Errorf("storage.backend must be json or wal, got %q", cfg.Storage.Backend)
	}

	if cfg.Storage.Path == "" {
		return errors.New("storage.path is required")
	}

	return nil
}

// ValidateSlack is checked only by transports that connect to Slack.
func ValidateSlack(cfg *properties.SlackConfigProperties) error {
	if cfg.BotToken == "" {
		return errors.New("slack.bot-token is required")
	}
	if cfg.AppToken == "" {
		return errors.New("slack.app-token is required for socket mode")
	}
	return nil
}
