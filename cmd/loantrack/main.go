package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gyloans/loantrack/internal/config"
	"github.com/gyloans/loantrack/internal/server"
	"github.com/gyloans/loantrack/internal/store"
	"github.com/gyloans/loantrack/pkg/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	address := flag.String("addr", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// The stock config file is optional; a missing one means defaults.
	configPath := *configLocation
	if configPath == constants.DefaultConfigFile {
		if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
			configPath = ""
		}
	}

	conf, err := config.LoadConfiguration(configPath)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", configPath, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	var cache store.Cache
	if conf.Cache.Enabled {
		redisCache := store.NewRedisCache(conf.Cache.Address, conf.Cache.TTL)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisCache.Ping(ctx)
		cancel()
		if err != nil {
			logger.Warn("redis unreachable, falling back to in-process cache",
				zap.String("op", "main"),
				zap.String("address", conf.Cache.Address),
				zap.Error(err),
			)
			cache = store.NewMemoryCache(conf.Cache.TTL)
		} else {
			logger.Info("response cache backed by redis",
				zap.String("op", "main"),
				zap.String("address", conf.Cache.Address),
			)
			cache = redisCache
		}
	} else {
		cache = store.NewMemoryCache(conf.Cache.TTL)
	}

	listenAddress := conf.Server.Address
	if *address != "" {
		listenAddress = *address
	}

	handler := server.NewHandler(logger, server.Options{
		Cache:           cache,
		MaxBodyBytes:    conf.Server.MaxBodyBytes,
		MinParticipants: conf.Benchmark.MinParticipants,
		Version:         version,
	})

	logger.Info(fmt.Sprintf("loantrack listening on %s", listenAddress),
		zap.String("op", "main"),
		zap.String("version", version),
	)

	if err := http.ListenAndServe(listenAddress, handler); err != nil {
		logger.Error("server exited",
			zap.String("op", "main"),
			zap.Error(err),
		)
		os.Exit(1)
	}
}
