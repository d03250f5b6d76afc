package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/repository"
)

type wordRepository struct{ pool *pgxpool.Pool }

// NewWordRepository returns the postgres-backed word pool. Words live in a
// shared table; scheduling state lives in one progress row per (user, word).
func NewWordRepository(pool *pgxpool.Pool) repository.WordRepository {
	return &wordRepository{pool: pool}
}

func (r *wordRepository) Add(ctx context.Context, word *entity.UserWord) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin add word: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO words (word, hint, definition, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		word.Word, word.Hint, word.Definition, word.ImageURL).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert word: %w", err)
	}

	// Fan a fresh level-1, due-now progress row out to every user.
	_, err = tx.Exec(ctx, `
		INSERT INTO user_word_progress (user_id, word_id, level_id, due_at)
		SELECT u.id, $1, 1, $2 FROM users u
		ON CONFLICT (user_id, word_id) DO NOTHING`, id, word.DueAt)
	if err != nil {
		return 0, fmt.Errorf("fan out progress: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit add word: %w", err)
	}
	return id, nil
}

func (r *wordRepository) List(ctx context.Context, query *repository.ListWordsQuery) ([]entity.UserWord, int64, error) {
	where := ""
	args := []any{}
	if query.Keyword != "" {
		where = "WHERE w.word ILIKE $1 OR w.definition ILIKE $1"
		args = append(args, "%"+query.Keyword+"%")
	}

	var total int64
	if err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM words w "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count words: %w", err)
	}

	limitPos := len(args) + 1
	args = append(args, query.PageSize, query.Offset())
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT w.id, w.word, w.hint, w.definition, w.image_url
		FROM words w %s
		ORDER BY w.word
		LIMIT $%d OFFSET $%d`, where, limitPos, limitPos+1), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	var words []entity.UserWord
	for rows.Next() {
		var w entity.UserWord
		if err := rows.Scan(&w.ID, &w.Word, &w.Hint, &w.Definition, &w.ImageURL); err != nil {
			return nil, 0, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, total, rows.Err()
}

func (r *wordRepository) Pool(ctx context.Context) ([]entity.UserWord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, word, hint, definition, image_url FROM words ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load word pool: %w", err)
	}
	defer rows.Close()

	var words []entity.UserWord
	for rows.Next() {
		var w entity.UserWord
		if err := rows.Scan(&w.ID, &w.Word, &w.Hint, &w.Definition, &w.ImageURL); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

const progressColumns = `
	w.id, p.user_id, w.word, w.hint, w.definition, w.image_url,
	p.level_id, p.streak_correct, p.total_right, p.total_wrong,
	p.last_reviewed_at, p.due_at, p.last_result`

func (r *wordRepository) WordsWithProgress(ctx context.Context, userID int64) ([]entity.UserWord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+progressColumns+`
		FROM user_word_progress p
		JOIN words w ON w.id = p.word_id
		WHERE p.user_id = $1
		ORDER BY w.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	defer rows.Close()
	return scanProgress(rows)
}

func (r *wordRepository) DueWords(ctx context.Context, userID int64, now time.Time) ([]entity.UserWord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+progressColumns+`
		FROM user_word_progress p
		JOIN words w ON w.id = p.word_id
		WHERE p.user_id = $1 AND p.due_at <= $2
		ORDER BY p.due_at, w.id`, userID, now)
	if err != nil {
		return nil, fmt.Errorf("load due words: %w", err)
	}
	defer rows.Close()
	return scanProgress(rows)
}

func scanProgress(rows pgx.Rows) ([]entity.UserWord, error) {
	var words []entity.UserWord
	for rows.Next() {
		var w entity.UserWord
		err := rows.Scan(&w.ID, &w.UserID, &w.Word, &w.Hint, &w.Definition, &w.ImageURL,
			&w.LevelID, &w.StreakCorrect, &w.TotalRight, &w.TotalWrong,
			&w.LastReviewedAt, &w.DueAt, &w.LastResult)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

func (r *wordRepository) UpdateProgress(ctx context.Context, word *entity.UserWord) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE user_word_progress SET
			level_id = $3, streak_correct = $4,
			total_right = $5, total_wrong = $6,
			last_reviewed_at = $7, due_at = $8, last_result = $9
		WHERE user_id = $1 AND word_id = $2`,
		word.UserID, word.ID, word.LevelID, word.StreakCorrect,
		word.TotalRight, word.TotalWrong,
		word.LastReviewedAt, word.DueAt, word.LastResult)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrWordNotFound
	}
	return nil
}

func (r *wordRepository) SetLevel(ctx context.Context, userID, wordID int64, levelID int32) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE user_word_progress
		SET level_id = $3, streak_correct = 0
		WHERE user_id = $1 AND word_id = $2`, userID, wordID, levelID)
	if err != nil {
		return fmt.Errorf("set level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrWordNotFound
	}
	return nil
}

func (r *wordRepository) Stats(ctx context.Context, userID int64, now time.Time, masteredLevelID int32) (*entity.UserStats, error) {
	var stats entity.UserStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE due_at <= $2),
			COUNT(*) FILTER (WHERE level_id >= $3),
			COALESCE(SUM(total_right), 0),
			COALESCE(SUM(total_wrong), 0)
		FROM user_word_progress
		WHERE user_id = $1`, userID, now, masteredLevelID).
		Scan(&stats.TotalWords, &stats.DueWords, &stats.MasteredWords,
			&stats.TotalRight, &stats.TotalWrong)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	return &stats, nil
}
