package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/repository"
)

// The scheduler configuration is a single jsonb row; corruption degrades
// to the built-in default ladder instead of breaking every review.
type settingsRepository struct{ pool *pgxpool.Pool }

// NewSettingsRepository returns the postgres-backed scheduler settings.
func NewSettingsRepository(pool *pgxpool.Pool) repository.SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) Load(ctx context.Context) (entity.SRSSettings, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT payload FROM srs_settings WHERE id = 1`).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.DefaultSettings(), nil
	}
	if err != nil {
		return entity.SRSSettings{}, fmt.Errorf("load settings: %w", err)
	}

	var settings entity.SRSSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return entity.DefaultSettings(), nil
	}
	settings.Normalize()
	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings entity.SRSSettings) error {
	settings.Normalize()
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO srs_settings (id, payload) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload`, raw)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
