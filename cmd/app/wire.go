//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/ID-Brains/islam-station/internal/bootstrap"
	"github.com/ID-Brains/islam-station/internal/domain/dhikr"
	"github.com/ID-Brains/islam-station/internal/domain/mosque"
	"github.com/ID-Brains/islam-station/internal/domain/prayer"
	"github.com/ID-Brains/islam-station/internal/infra/config"
	httpiface "github.com/ID-Brains/islam-station/internal/interface/http"
	"github.com/ID-Brains/islam-station/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		providePgxPool,
		provideValkeyClient,
		providePrayerConfig,
		provideScheduleStore,
		provideTimingsClient,
		provideGeocoder,
		provideMosqueConfig,
		provideMosqueRepository,
		provideDhikrRepository,
		provideHealthChecks,
		prayer.NewService,
		mosque.NewService,
		dhikr.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
