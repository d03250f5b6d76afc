package repository

import (
	"context"
	"time"

	"github.com/eslsoft/vocduel/internal/entity"
)

// ListWordsQuery holds parameters for listing the shared word pool.
type ListWordsQuery struct {
	Pagination

	Keyword string
}

// WordRepository abstracts the word pool and per-user progress rows.
// Adding a word fans a fresh level-1, due-now progress row out to every
// existing user.
type WordRepository interface {
	Add(ctx context.Context, word *entity.UserWord) (int64, error)
	List(ctx context.Context, query *ListWordsQuery) ([]entity.UserWord, int64, error)
	Pool(ctx context.Context) ([]entity.UserWord, error)

	WordsWithProgress(ctx context.Context, userID int64) ([]entity.UserWord, error)
	DueWords(ctx context.Context, userID int64, now time.Time) ([]entity.UserWord, error)
	UpdateProgress(ctx context.Context, word *entity.UserWord) error
	SetLevel(ctx context.Context, userID, wordID int64, levelID int32) error
	Stats(ctx context.Context, userID int64, now time.Time, masteredLevelID int32) (*entity.UserStats, error)
}
