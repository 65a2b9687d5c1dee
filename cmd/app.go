package cmd

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodorder/internal/logger"
	"github.com/chrisdamba/foodorder/internal/metrics"
	"github.com/chrisdamba/foodorder/internal/models"
	"github.com/chrisdamba/foodorder/internal/output"
	"github.com/chrisdamba/foodorder/internal/processor"
	"github.com/chrisdamba/foodorder/internal/repositories/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app carries what every command needs once configuration is loaded.
type app struct {
	cfg      *models.Config
	log      logger.Logger
	menu     models.MenuData
	out      output.OutputDestination
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	log, err := logger.NewStructured(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	menuData, err := loadMenu(ctx, cfg)
	if err != nil {
		return nil, err
	}

	out, err := output.New(ctx, cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("error creating output destination: %w", err)
	}

	log.Debug("configuration loaded", map[string]interface{}{
		"menu_source":        cfg.MenuSource,
		"output_destination": cfg.OutputDestination,
		"dishes":             len(menuData),
	})
	registry := prometheus.NewRegistry()
	return &app{
		cfg:      cfg,
		log:      log,
		menu:     menuData,
		out:      out,
		registry: registry,
		metrics:  metrics.New(registry),
	}, nil
}

func loadMenu(ctx context.Context, cfg *models.Config) (models.MenuData, error) {
	if cfg.MenuSource != models.MenuSourcePostgres {
		return cfg.MenuData()
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	defer pool.Close()
	return postgres.LoadMenuData(ctx, postgres.NewMenuRepository(pool))
}

func (a *app) managerOptions() []processor.Option {
	opts := []processor.Option{processor.WithMetrics(a.metrics)}
	if a.out != nil {
		opts = append(opts, processor.WithEventWriter(a.out, a.cfg.KafkaTopic))
	}
	return opts
}

func (a *app) Close() {
	if a.out != nil {
		if err := a.out.Close(); err != nil {
			a.log.Error("failed to close output destination", map[string]interface{}{"error": err.Error()})
		}
	}
	if a.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(a.cfg.MetricsFile, a.registry); err != nil {
			a.log.Error("failed to write metrics file", map[string]interface{}{
				"path":  a.cfg.MetricsFile,
				"error": err.Error(),
			})
		}
	}
	_ = a.log.Sync()
}
