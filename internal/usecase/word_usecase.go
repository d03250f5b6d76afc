package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/repository"
)

// WordUsecase manages the shared word pool and per-user progress rows
// outside of practice runs.
type WordUsecase interface {
	Add(ctx context.Context, word *entity.UserWord) (*entity.UserWord, error)
	List(ctx context.Context, query *repository.ListWordsQuery) ([]entity.UserWord, int64, error)
	Stats(ctx context.Context, userID int64) (*entity.UserStats, error)
	SetLevel(ctx context.Context, userID, wordID int64, levelID int32) error
}

// NewWordUsecase wires the repositories with default behaviour.
func NewWordUsecase(words repository.WordRepository, settings repository.SettingsRepository) WordUsecase {
	return &wordUsecase{
		words:    words,
		settings: settings,
		clock:    time.Now,
	}
}

type wordUsecase struct {
	words    repository.WordRepository
	settings repository.SettingsRepository
	clock    func() time.Time
}

func (u *wordUsecase) Add(ctx context.Context, word *entity.UserWord) (*entity.UserWord, error) {
	if word == nil || strings.TrimSpace(word.Word) == "" {
		return nil, entity.ErrInvalidWordText
	}
	w := *word
	w.Normalize(u.clock())
	w.LevelID = 1
	id, err := u.words.Add(ctx, &w)
	if err != nil {
		return nil, err
	}
	w.ID = id
	return &w, nil
}

func (u *wordUsecase) List(ctx context.Context, query *repository.ListWordsQuery) ([]entity.UserWord, int64, error) {
	if query == nil {
		query = &repository.ListWordsQuery{}
	}
	if query.PageSize <= 0 {
		query.PageSize = 50
	}
	if query.PageNo <= 0 {
		query.PageNo = 1
	}
	return u.words.List(ctx, query)
}

func (u *wordUsecase) Stats(ctx context.Context, userID int64) (*entity.UserStats, error) {
	settings, err := u.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	return u.words.Stats(ctx, userID, u.clock(), settings.MaxLevelID())
}

// SetLevel applies a manual level override. The target level is clamped
// to the configured ladder and the streak resets, same as a promotion.
func (u *wordUsecase) SetLevel(ctx context.Context, userID, wordID int64, levelID int32) error {
	settings, err := u.settings.Load(ctx)
	if err != nil {
		return err
	}
	level := settings.LevelFor(levelID)
	return u.words.SetLevel(ctx, userID, wordID, level.ID)
}
