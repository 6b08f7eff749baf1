//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/salinity-watch/internal/bootstrap"
	"github.com/yanqian/salinity-watch/internal/domain/compat"
	"github.com/yanqian/salinity-watch/internal/domain/conditions"
	"github.com/yanqian/salinity-watch/internal/domain/monitor"
	"github.com/yanqian/salinity-watch/internal/domain/station"
	"github.com/yanqian/salinity-watch/internal/infra/config"
	"github.com/yanqian/salinity-watch/internal/infra/simulator"
	httpiface "github.com/yanqian/salinity-watch/internal/interface/http"
	"github.com/yanqian/salinity-watch/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSpeciesTable,
		provideAnalyzerConfig,
		provideStationConfig,
		provideSimulatorConfig,
		provideReadingStore,
		provideIngester,
		compat.NewClassifier,
		conditions.NewAnalyzer,
		monitor.NewService,
		station.NewService,
		simulator.NewScheduler,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
