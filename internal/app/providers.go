package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/vocduel/internal/infrastructure/config"
	"github.com/eslsoft/vocduel/internal/repository"
	"github.com/eslsoft/vocduel/internal/scheduler"
	"github.com/eslsoft/vocduel/internal/usecase"
)

// Providers that need configuration knobs beyond their repositories.

func providePracticeUsecase(words repository.WordRepository, settings repository.SettingsRepository, logger *logrus.Logger, cfg *config.Config) usecase.PracticeUsecase {
	return usecase.NewPracticeUsecase(words, settings, logger, cfg.Game.LessonSize)
}

func provideVersusUsecase(rooms repository.VersusRoomRepository, words repository.WordRepository, users repository.UserRepository, logger *logrus.Logger, cfg *config.Config) usecase.VersusUsecase {
	return usecase.NewVersusUsecase(rooms, words, users, logger, cfg.Game.VersusWords, cfg.Game.RoomCodeAttempts)
}

func provideReverseUsecase(rooms repository.ReverseRoomRepository, answers repository.ReverseAnswerRepository, words repository.WordRepository, users repository.UserRepository, logger *logrus.Logger, cfg *config.Config) usecase.ReverseUsecase {
	return usecase.NewReverseUsecase(rooms, answers, words, users, logger, cfg.Game.ReverseQuestions, cfg.Game.QuestionDurationMs, cfg.Game.RoomCodeAttempts)
}

func provideSweeper(versus repository.VersusRoomRepository, reverse repository.ReverseRoomRepository, logger *logrus.Logger, cfg *config.Config) *scheduler.Sweeper {
	return scheduler.NewSweeper(versus, reverse, logger, cfg.Game.StaleRoomMinutes)
}
