package properties

import "time"

type ApplicationConfigProperties struct {
	Profile  string `yaml:"profile"`
	LogLevel string `yaml:"log-level"`
}

type SlackConfigProperties struct {
	BotToken string `yaml:"bot-token"`
	AppToken string `yaml:"app-token"`
	Debug    bool   `yaml:"debug"`
}

type WriteAheadLogProperties struct {
	NoSync bool `yaml:"no-sync"`
}

type StorageConfigProperties struct {
	Backend string                  `yaml:"backend"`
	Path    string                  `yaml:"path"`
	Wal     WriteAheadLogProperties `yaml:"wal"`
}

type CommandConfigProperties struct {
	AnnounceDelay uint64 `yaml:"announce-delay"`
	RevealDelay   uint64 `yaml:"reveal-delay"`
}

type MetricsConfigProperties struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

type HealthConfigProperties struct {
	Enabled bool   `yaml:"enabled"`
	Network string `yaml:"network"`
	Address string `yaml:"address"`
}

type Config struct {
	Application ApplicationConfigProperties `yaml:"app"`
	Slack       SlackConfigProperties       `yaml:"slack"`
	Storage     StorageConfigProperties     `yaml:"storage"`
	Command     CommandConfigProperties     `yaml:"command"`
	Metrics     MetricsConfigProperties     `yaml:"metrics"`
	Health      HealthConfigProperties      `yaml:"health"`
}

func (c *CommandConfigProperties) AnnounceDuration() time.Duration {
	return time.Duration(c.AnnounceDelay) * time.Millisecond
}

func (c *CommandConfigProperties) RevealDuration() time.Duration {
	return time.Duration(c.RevealDelay) * time.Millisecond
}
