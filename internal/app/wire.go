//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/eslsoft/vocduel/internal/adapter/httpapi"
	"github.com/eslsoft/vocduel/internal/adapter/repository"
	"github.com/eslsoft/vocduel/internal/infrastructure/config"
	"github.com/eslsoft/vocduel/internal/infrastructure/database"
	"github.com/eslsoft/vocduel/internal/infrastructure/server"
	"github.com/eslsoft/vocduel/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	database.NewConnection,
)

var repositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewWordRepository,
	repository.NewSettingsRepository,
	repository.NewVersusRoomRepository,
	repository.NewReverseRoomRepository,
	repository.NewReverseAnswerRepository,
)

var usecaseSet = wire.NewSet(
	usecase.NewWordUsecase,
	providePracticeUsecase,
	provideVersusUsecase,
	provideReverseUsecase,
)

var serverSet = wire.NewSet(
	server.NewLogger,
	server.NewMetrics,
	httpapi.NewHandler,
	server.NewServer,
	provideSweeper,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		serverSet,
		wire.Struct(new(Container), "Logger", "Server", "Sweeper"),
	)
	return nil, nil, nil
}
