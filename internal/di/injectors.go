//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"github.com/naka-gawa/github-profile-stats/internal"
	"github.com/naka-gawa/github-profile-stats/internal/controllers"
	"github.com/naka-gawa/github-profile-stats/internal/gateway"
	"github.com/naka-gawa/github-profile-stats/internal/providers"
	"github.com/naka-gawa/github-profile-stats/internal/store"
	"github.com/naka-gawa/github-profile-stats/internal/structures"
	"github.com/naka-gawa/github-profile-stats/internal/usecase"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		store.NewSnapshotStoreFromConfig,
		gateway.NewFactory,
		usecase.NewAnalysisService,
		wire.Bind(new(usecase.AnalysisServiceInterface), new(*usecase.AnalysisService)),
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitService(cfg *structures.CliFlags) (*Service, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewCliLogProvider,
		providers.NewMetricsProvider,

		store.NewSnapshotStoreFromConfig,
		gateway.NewFactory,
		usecase.NewAnalysisService,
		wire.Struct(new(Service), "*"),
	)

	return nil, nil
}
