package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/vocduel/internal/infrastructure/server"
	"github.com/eslsoft/vocduel/internal/scheduler"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Logger  *logrus.Logger
	Server  *server.Server
	Sweeper *scheduler.Sweeper
}
