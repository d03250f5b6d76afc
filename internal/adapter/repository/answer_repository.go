package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/repository"
)

type answerRepository struct{ pool *pgxpool.Pool }

// NewReverseAnswerRepository returns the postgres-backed answer log. The
// unique index on (room_id, question_index, user_id) is what makes
// duplicate submissions collapse.
func NewReverseAnswerRepository(pool *pgxpool.Pool) repository.ReverseAnswerRepository {
	return &answerRepository{pool: pool}
}

func (r *answerRepository) Insert(ctx context.Context, answer *entity.ReverseAnswer) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO reverse_answers
			(room_id, question_index, user_id, selected_word_id, correct, points, answer_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (room_id, question_index, user_id) DO NOTHING`,
		answer.RoomID, answer.QuestionIndex, answer.UserID,
		answer.SelectedWordID, answer.Correct, answer.Points, answer.AnswerTimeMs)
	if err != nil {
		return false, fmt.Errorf("insert answer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

const answerColumns = `
	id, room_id, question_index, user_id, selected_word_id,
	correct, only_correct, points, answer_time_ms, created_at`

func (r *answerRepository) ForQuestion(ctx context.Context, roomID int64, questionIndex int32) ([]entity.ReverseAnswer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+answerColumns+`
		FROM reverse_answers
		WHERE room_id = $1 AND question_index = $2
		ORDER BY created_at`, roomID, questionIndex)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	defer rows.Close()
	return scanAnswers(rows)
}

func (r *answerRepository) ForRoom(ctx context.Context, roomID int64) ([]entity.ReverseAnswer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+answerColumns+`
		FROM reverse_answers
		WHERE room_id = $1
		ORDER BY question_index, created_at`, roomID)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	defer rows.Close()
	return scanAnswers(rows)
}

func scanAnswers(rows pgx.Rows) ([]entity.ReverseAnswer, error) {
	var answers []entity.ReverseAnswer
	for rows.Next() {
		var a entity.ReverseAnswer
		err := rows.Scan(&a.ID, &a.RoomID, &a.QuestionIndex, &a.UserID,
			&a.SelectedWordID, &a.Correct, &a.OnlyCorrect, &a.Points,
			&a.AnswerTimeMs, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (r *answerRepository) UpgradeSoleCorrect(ctx context.Context, roomID int64, questionIndex int32, userID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reverse_answers
		SET points = points + 1, only_correct = TRUE
		WHERE room_id = $1 AND question_index = $2 AND user_id = $3
			AND correct AND NOT only_correct`,
		roomID, questionIndex, userID)
	if err != nil {
		return false, fmt.Errorf("upgrade sole correct: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
