package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/repository"
)

type userRepository struct{ pool *pgxpool.Pool }

// NewUserRepository returns the postgres-backed user roster.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

// Ensure registers the user on first contact and seeds a level-1 progress
// row for every word already in the pool. A returning user only gets a
// name refresh.
func (r *userRepository) Ensure(ctx context.Context, id int64, name string) error {
	if id <= 0 {
		return entity.ErrUserNotFound
	}
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`, id, name)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if name != "" {
			_, err = r.pool.Exec(ctx,
				`UPDATE users SET name = $2 WHERE id = $1`, id, name)
			if err != nil {
				return fmt.Errorf("refresh user name: %w", err)
			}
		}
		return nil
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO user_word_progress (user_id, word_id, level_id, due_at)
		SELECT $1, w.id, 1, now() FROM words w
		ON CONFLICT (user_id, word_id) DO NOTHING`, id)
	if err != nil {
		return fmt.Errorf("seed progress: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.Name, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
