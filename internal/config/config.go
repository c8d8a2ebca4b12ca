// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"time"

	"github.com/gyloans/loantrack/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for the loantrack service.
type Configuration struct {
	Server    ServerConfig    `yaml:"server,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
	Cache     CacheConfig     `yaml:"cache,omitempty"`
	Benchmark BenchmarkConfig `yaml:"benchmark,omitempty"`
}

// ServerConfig holds the HTTP listener options.
type ServerConfig struct {
	Address      string `yaml:"address,omitempty"`
	MaxBodyBytes int64  `yaml:"maxBodyBytes,omitempty"`
}

// LoggingConfig holds logging configuration options.
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// CacheConfig holds the optional Redis response cache settings. When
// disabled the server falls back to an in-process cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled,omitempty"`
	Address string        `yaml:"address,omitempty"`
	TTL     time.Duration `yaml:"ttl,omitempty"`
}

// BenchmarkConfig holds benchmarking aggregation settings.
type BenchmarkConfig struct {
	MinParticipants int `yaml:"minParticipants,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing path yields the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	configuration := defaultConfiguration()

	if configPath == "" {
		return configuration, nil
	}

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()
	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	if err := viper.Unmarshal(configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return configuration, nil
}

func defaultConfiguration() *Configuration {
	return &Configuration{
		Server: ServerConfig{
			Address:      constants.DefaultServerAddress,
			MaxBodyBytes: constants.DefaultMaxBodySizeBytes,
		},
		Cache: CacheConfig{
			TTL: constants.DefaultCacheTTL,
		},
		Benchmark: BenchmarkConfig{
			MinParticipants: constants.MinBenchmarkParticipants,
		},
	}
}

// applyDefaults backfills zero values left by a partial config file.
func (conf *Configuration) applyDefaults() {
	if conf.Server.Address == "" {
		conf.Server.Address = constants.DefaultServerAddress
	}
	if conf.Server.MaxBodyBytes <= 0 {
		conf.Server.MaxBodyBytes = constants.DefaultMaxBodySizeBytes
	}
	if conf.Cache.TTL <= 0 {
		conf.Cache.TTL = constants.DefaultCacheTTL
	}
	if conf.Benchmark.MinParticipants < constants.MinBenchmarkParticipants {
		conf.Benchmark.MinParticipants = constants.MinBenchmarkParticipants
	}
}
