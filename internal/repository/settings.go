package repository

import (
	"context"

	"github.com/eslsoft/vocduel/internal/entity"
)

// SettingsRepository loads the scheduler configuration. Implementations
// return normalized settings and fall back to the defaults when nothing
// is stored; loading never fails on malformed content.
type SettingsRepository interface {
	Load(ctx context.Context) (entity.SRSSettings, error)
	Save(ctx context.Context, settings entity.SRSSettings) error
}
