package properties

type ConfigProvider interface {
	GetApplication() *ApplicationConfigProperties
	GetSlack() *SlackConfigProperties
	GetStorage() *StorageConfigProperties
	GetCommand() *CommandConfigProperties
	GetMetrics() *MetricsConfigProperties
	GetHealth() *HealthConfigProperties
}

type AppConfigProvider struct {
	config *Config
}

func NewProvider(cfg *Config) *AppConfigProvider {
	return &AppConfigProvider{config: cfg}
}

func (c *AppConfigProvider) GetApplication() *ApplicationConfigProperties {
	return &c.config.Application
}

func (c *AppConfigProvider) GetSlack() *SlackConfigProperties {
	return &c.config.Slack
}

func (c *AppConfigProvider) GetStorage() *StorageConfigProperties {
	return &c.config.Storage
}

func (c *AppConfigProvider) GetCommand() *CommandConfigProperties {
	return &c.config.Command
}

func (c *AppConfigProvider) GetMetrics() *MetricsConfigProperties {
	return &c.config.Metrics
}

func (c *AppConfigProvider) GetHealth() *HealthConfigProperties {
	return &c.config.Health
}
