package config

import "github.com/caarlos0/env/v11"

func Load() (Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func LoadExporter() (ExporterConfig, error) {
	var cfg ExporterConfig

	if err := env.Parse(&cfg); err != nil {
		return ExporterConfig{}, err
	}

	return cfg, nil
}
