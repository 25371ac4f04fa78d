package config

import "errors"

type Config struct {
	Port           int      `env:"PORT" envDefault:"8080"`
	TrustProxies   []string `env:"TRUST_PROXIES"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`

	Database DatabaseConfig `envPrefix:"DATABASE_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	PostHog  PostHogConfig  `envPrefix:"POSTHOG_"`
}

func (c Config) Validate() error {
	return c.Database.Validate()
}

type DatabaseConfig struct {
	URI string `env:"URI"`
}

func (c DatabaseConfig) Validate() error {
	if c.URI == "" {
		return errors.New("DATABASE_URI is required")
	}

	return nil
}

// RedisConfig points at the session-token store of the main Quirzy app.
// Optional: without it the backend skips post-deletion session
// revocation.
type RedisConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"6379"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
}

// Enabled reports whether a Redis endpoint is configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// PostHogConfig configures product analytics. Optional; no API key
// means no events are sent.
type PostHogConfig struct {
	APIKey   string `env:"API_KEY"`
	Endpoint string `env:"ENDPOINT" envDefault:"https://us.i.posthog.com"`
}

func (c PostHogConfig) Enabled() bool {
	return c.APIKey != ""
}

// ExporterConfig is the configuration of the standalone Prometheus
// exporter binary.
type ExporterConfig struct {
	Port int `env:"EXPORTER_PORT" envDefault:"9090"`

	Database DatabaseConfig `envPrefix:"DATABASE_"`
}

func (c ExporterConfig) Validate() error {
	return c.Database.Validate()
}
