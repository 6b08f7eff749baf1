package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/salinity-watch/internal/domain/conditions"
	"github.com/yanqian/salinity-watch/internal/domain/monitor"
	"github.com/yanqian/salinity-watch/internal/domain/species"
	"github.com/yanqian/salinity-watch/internal/domain/station"
	"github.com/yanqian/salinity-watch/internal/infra/config"
	"github.com/yanqian/salinity-watch/internal/infra/readingstore"
	"github.com/yanqian/salinity-watch/internal/infra/simulator"
)

func provideSpeciesTable(cfg *config.Config, logger *slog.Logger) (*species.Table, error) {
	mode, ok := species.ParseMatchMode(cfg.Species.MatchMode)
	if !ok {
		return nil, fmt.Errorf("unknown species match mode %q", cfg.Species.MatchMode)
	}
	path := strings.TrimSpace(cfg.Species.TablePath)
	if path == "" {
		logger.Info("using embedded species table", "matchMode", mode)
		return species.Default(mode)
	}
	table, err := species.Load(path, mode)
	if err != nil {
		return nil, err
	}
	logger.Info("species table loaded", "path", path, "matchMode", mode, "aliases", len(table.Aliases()))
	return table, nil
}

func provideAnalyzerConfig(cfg *config.Config) conditions.Config {
	return conditions.Config{MinReadings: cfg.Analysis.MinReadings}
}

func provideStationConfig(cfg *config.Config) station.Config {
	return station.Config{
		Secret:   cfg.Stations.Secret,
		TokenTTL: cfg.Stations.TokenTTL,
		Keys:     cfg.Stations.Keys,
	}
}

func provideSimulatorConfig(cfg *config.Config) simulator.Config {
	s := cfg.Simulator
	return simulator.Config{
		Enabled:          s.Enabled,
		Schedule:         s.Schedule,
		Seed:             s.Seed,
		SeedHistory:      s.SeedHistory,
		StartSalinity:    s.StartSalinity,
		StartTemperature: s.StartTemperature,
		SalinityStep:     s.SalinityStep,
		TemperatureStep:  s.TemperatureStep,
		MinSalinity:      s.MinSalinity,
		MaxSalinity:      s.MaxSalinity,
		MinTemperature:   s.MinTemperature,
		MaxTemperature:   s.MaxTemperature,
	}
}

func provideIngester(svc monitor.Service) simulator.Ingester {
	return svc
}

func provideReadingStore(cfg *config.Config, logger *slog.Logger) monitor.ReadingStore {
	capacity := cfg.Analysis.WindowSize
	if cfg.Store.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return readingstore.NewMemoryStore(capacity)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return readingstore.NewMemoryStore(capacity)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("valkey reading store enabled", "addr", cfg.Store.Valkey.Addr, "key", cfg.Store.Valkey.Key)
			return readingstore.NewValkeyStore(client, cfg.Store.Valkey.Key, capacity)
		}
	}
	logger.Info("using memory reading store", "capacity", capacity)
	return readingstore.NewMemoryStore(capacity)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Store.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Store.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Store.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
