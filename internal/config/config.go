// Package config loads runtime settings from an optional yaml file plus
// EARTHGEN_-prefixed environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	StoreKind   string `mapstructure:"store_kind"`
	StoreDSN    string `mapstructure:"store_dsn"`
	Schema      string `mapstructure:"schema"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	BatchSize   int    `mapstructure:"batch_size"`
	MaxRecords  int64  `mapstructure:"max_records"`
	MaxParallel int    `mapstructure:"max_parallel"`
	WriteMode   string `mapstructure:"write_mode"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("earthgen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("EARTHGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("store_kind", "sqlite")
	v.SetDefault("store_dsn", "./earthgen.sqlite")
	v.SetDefault("schema", "raw")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("batch_size", 1000)
	v.SetDefault("max_records", 1_000_000)
	v.SetDefault("max_parallel", 3)
	v.SetDefault("write_mode", "append")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
