// Package cli provides the startup wiring shared by the fintrack commands:
// logging, environment, configuration, settings and the transaction service.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/sheets/google"
	"fintrack/internal/storage"
)

// SetupLogger initializes structured logging at the given level, writing to
// w (stderr when nil), and sets it as the default logger.
func SetupLogger(level string, w io.Writer) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(level)
	if w != nil {
		cfg.Output = w
	}
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig(logger *log.Logger) (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithComponent(log.ComponentConfig).Error("Configuration validation failed", log.FieldError, err)
		return nil, err
	}
	return cfg, nil
}

// LoadSettingsOrDefault reads the settings document. A missing document is
// created with defaults; an unreadable or corrupt one is reported and the
// defaults are used for this run without touching the file.
func LoadSettingsOrDefault(path string, logger *log.Logger) config.Settings {
	l := logger.WithComponent(log.ComponentConfig)
	s, err := config.LoadSettings(path)
	if err != nil {
		if errors.Is(err, core.ErrConfigCorrupt) {
			l.Warn("Settings file is corrupt, using defaults", log.FieldPath, path, log.FieldError, err)
		} else {
			l.Warn("Settings file could not be loaded, using defaults", log.FieldPath, path, log.FieldError, err)
		}
		return config.DefaultSettings()
	}
	if err := s.Validate(); err != nil {
		l.Warn("Settings file has invalid values, using defaults", log.FieldPath, path, log.FieldError, err)
		return config.DefaultSettings()
	}
	l.Debug("Settings loaded", log.FieldOperation, log.OpLoad, log.FieldPath, path)
	return s
}

// ServiceOptions selects the optional collaborators built by NewService.
type ServiceOptions struct {
	Sheets bool
}

// NewService wires the transaction store named by the settings together with
// the AMQP publisher (when AMQP_URL is set) and, on request, the Sheets
// mirror. The store is initialized before returning.
func NewService(ctx context.Context, cfg *config.Config, s config.Settings, logger *log.Logger, opts ServiceOptions) (*services.TransactionService, error) {
	store := storage.NewCSVRepository(s.FileName, logger)
	svcOpts := []services.Option{services.WithLogger(logger)}

	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, logger)
		if err != nil {
			// Recording works without the broker; events are simply not sent.
			logger.WithComponent(log.ComponentAMQP).Warn("AMQP unavailable, transaction events disabled",
				log.FieldExchange, cfg.AMQPExchange,
				log.FieldError, err)
		} else {
			svcOpts = append(svcOpts, services.WithPublisher(client))
		}
	}

	if opts.Sheets {
		sheetsCtx, cancel := context.WithTimeout(ctx, cfg.NetworkTimeout)
		defer cancel()
		client, err := google.NewFromConfig(sheetsCtx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("init sheets mirror: %w", err)
		}
		svcOpts = append(svcOpts, services.WithSheetWriter(client))
	}

	svc := services.NewTransactionService(store, svcOpts...)
	if err := svc.Initialize(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("initialize transaction store: %w", err)
	}
	return svc, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM so that an
// interrupted export or publish stops promptly.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
