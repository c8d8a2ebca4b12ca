package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gyloans/loantrack/pkg/constants"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	if conf.Server.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, expected default %q", conf.Server.Address, constants.DefaultServerAddress)
	}
	if conf.Server.MaxBodyBytes != constants.DefaultMaxBodySizeBytes {
		t.Errorf("MaxBodyBytes = %d, expected default %d", conf.Server.MaxBodyBytes, constants.DefaultMaxBodySizeBytes)
	}
	if conf.Benchmark.MinParticipants != constants.MinBenchmarkParticipants {
		t.Errorf("MinParticipants = %d, expected %d", conf.Benchmark.MinParticipants, constants.MinBenchmarkParticipants)
	}
	if conf.Cache.Enabled {
		t.Error("cache should be disabled by default")
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	path := writeTempConfig(t, `
server:
  address: ":9090"
  maxBodyBytes: 1048576
logging:
  level: debug
  format: console
cache:
  enabled: true
  address: "localhost:6379"
  ttl: 10m
benchmark:
  minParticipants: 5
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	if conf.Server.Address != ":9090" {
		t.Errorf("Address = %q, expected :9090", conf.Server.Address)
	}
	if conf.Server.MaxBodyBytes != 1048576 {
		t.Errorf("MaxBodyBytes = %d, expected 1048576", conf.Server.MaxBodyBytes)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("Logging = %+v, expected debug/console", conf.Logging)
	}
	if !conf.Cache.Enabled || conf.Cache.Address != "localhost:6379" {
		t.Errorf("Cache = %+v, expected enabled at localhost:6379", conf.Cache)
	}
	if conf.Cache.TTL != 10*time.Minute {
		t.Errorf("Cache.TTL = %v, expected 10m", conf.Cache.TTL)
	}
	if conf.Benchmark.MinParticipants != 5 {
		t.Errorf("MinParticipants = %d, expected 5", conf.Benchmark.MinParticipants)
	}
}

func TestLoadConfigurationPartialFileKeepsDefaults(t *testing.T) {
	path := writeTempConfig(t, `
logging:
  level: warn
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	if conf.Logging.Level != "warn" {
		t.Errorf("Level = %q, expected warn", conf.Logging.Level)
	}
	if conf.Server.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, expected default", conf.Server.Address)
	}
	if conf.Cache.TTL != 5*time.Minute {
		t.Errorf("TTL = %v, expected default 5m", conf.Cache.TTL)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigurationFloorsMinParticipants(t *testing.T) {
	path := writeTempConfig(t, `
benchmark:
  minParticipants: 1
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	if conf.Benchmark.MinParticipants != constants.MinBenchmarkParticipants {
		t.Errorf("MinParticipants = %d, expected floor of %d",
			conf.Benchmark.MinParticipants, constants.MinBenchmarkParticipants)
	}
}
