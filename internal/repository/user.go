package repository

import (
	"context"

	"github.com/eslsoft/vocduel/internal/entity"
)

// UserRepository abstracts the user roster. Authentication is out of
// scope; callers identify themselves and Ensure keeps the roster current.
type UserRepository interface {
	Ensure(ctx context.Context, id int64, name string) error
	Get(ctx context.Context, id int64) (*entity.User, error)
}
