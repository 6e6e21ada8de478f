package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/maplerates/mortgage-engine/internal/cache"
	"github.com/maplerates/mortgage-engine/internal/config"
	"github.com/maplerates/mortgage-engine/internal/server"
	"github.com/maplerates/mortgage-engine/pkg/constants"
	"github.com/maplerates/mortgage-engine/pkg/engine"
	"github.com/maplerates/mortgage-engine/pkg/output"
	"github.com/maplerates/mortgage-engine/pkg/ratemath"
	"github.com/maplerates/mortgage-engine/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
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

// loadConfiguration loads the engine config, falling back to defaults when
// the default config file simply is not there.
func loadConfiguration(path string) (*config.Configuration, error) {
	if path == constants.DefaultConfigFile {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.LoadConfiguration(path)
}

// loadRequest reads a YAML calculation request. YAML is decoded through a
// generic map and re-encoded as JSON so the request uses the same field
// names as the HTTP API.
func loadRequest(path string) (engine.Request, error) {
	var req engine.Request

	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read request file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return req, fmt.Errorf("failed to parse request file: %w", err)
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return req, fmt.Errorf("failed to convert request: %w", err)
	}
	if err := json.Unmarshal(jsonData, &req); err != nil {
		return req, fmt.Errorf("failed to decode request: %w", err)
	}
	return req, nil
}

func buildCache(logger *zap.Logger, redisAddress string) cache.Repository {
	if redisAddress == "" {
		return cache.NewMemory()
	}
	redisCache := cache.NewRedis(redisAddress)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, falling back to in-memory cache",
			zap.String("op", "main"),
			zap.String("address", redisAddress),
			zap.Error(err),
		)
		return cache.NewMemory()
	}
	return redisCache
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serve := flag.Bool("serve", false, "run the calculator HTTP API")
	requestLocation := flag.String("request", "", "path to a YAML calculation request file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := loadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	facade := engine.New(logger)

	if *serve {
		serverConfig, err := server.LoadConfig(*serverConfigLocation)
		if err != nil {
			logger.Fatal("failed to load server configuration",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}

		// Server config logging refines the engine config; the CLI flag
		// still wins on level.
		if serverConfig.Logging != (config.LoggingConfig{}) {
			serverLogger, err := initializeLogger(conf.Logging.Merge(serverConfig.Logging), *logLevel)
			if err != nil {
				logger.Fatal("failed to initialize server logger",
					zap.String("op", "main"),
					zap.Error(err),
				)
			}
			_ = logger.Sync()
			logger = serverLogger
			facade = engine.New(logger)
		}

		handler := server.NewHandler(logger, facade, buildCache(logger, serverConfig.RedisAddress), serverConfig, version)
		logger.Info("serving calculator API",
			zap.String("op", "main"),
			zap.String("address", serverConfig.Address),
			zap.String("version", version),
		)
		if err := http.ListenAndServe(serverConfig.Address, handler); err != nil {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	if *requestLocation == "" {
		logger.Fatal("either -serve or -request is required",
			zap.String("op", "main"),
		)
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	request, err := loadRequest(*requestLocation)
	if err != nil {
		logger.Fatal("failed to load calculation request",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	// Qualification overrides from config flow into affordability requests
	// unless the request already sets its own limits. A contract-rate-only
	// request qualifies at the configured stress test rather than the
	// regulatory defaults baked into the engine.
	if request.Affordability != nil {
		if request.Affordability.GDSLimit == 0 {
			request.Affordability.GDSLimit = conf.Qualification.GDSLimit
		}
		if request.Affordability.TDSLimit == 0 {
			request.Affordability.TDSLimit = conf.Qualification.TDSLimit
		}
		if request.Affordability.QualifyingRatePercent == 0 && request.Affordability.ContractRatePercent > 0 {
			request.Affordability.QualifyingRatePercent = ratemath.QualifyingRate(
				request.Affordability.ContractRatePercent,
				conf.Qualification.BenchmarkRatePercent,
				conf.Qualification.StressTestBufferPercent,
			)
		}
	}

	result := facade.Calculate(request)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, result)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, result)
	}

	if !result.OK() {
		os.Exit(1)
	}
}
