package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/repository"
)

const reverseChannel = "reverse_rooms"

type reverseRepository struct{ pool *pgxpool.Pool }

// NewReverseRoomRepository returns the postgres-backed reverse quiz room
// store. Seats live in reverse_players; the room row carries the current
// question as jsonb. Mutations raise pg_notify on the reverse channel.
func NewReverseRoomRepository(pool *pgxpool.Pool) repository.ReverseRoomRepository {
	return &reverseRepository{pool: pool}
}

func (r *reverseRepository) Create(ctx context.Context, room *entity.ReverseRoom) (*entity.ReverseRoom, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO reverse_rooms (code, host_id, status, total_questions, question_duration_ms)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		room.Code, room.HostID, room.Status, room.TotalQuestions, room.QuestionDurationMs).
		Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, entity.ErrRoomCodeTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create reverse room: %w", err)
	}
	r.notify(ctx, room.ID)
	return room, nil
}

func (r *reverseRepository) Get(ctx context.Context, id int64) (*entity.ReverseRoom, error) {
	return r.fetch(ctx, "id = $1", id)
}

func (r *reverseRepository) GetByCode(ctx context.Context, code string) (*entity.ReverseRoom, error) {
	return r.fetch(ctx, "code = $1", code)
}

func (r *reverseRepository) fetch(ctx context.Context, cond string, arg any) (*entity.ReverseRoom, error) {
	var (
		room     entity.ReverseRoom
		question []byte
		wordIDs  []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, code, host_id, status, total_questions, question_index,
			question, game_word_ids, question_started_at, question_duration_ms,
			created_at, updated_at
		FROM reverse_rooms WHERE `+cond, arg).
		Scan(&room.ID, &room.Code, &room.HostID, &room.Status,
			&room.TotalQuestions, &room.QuestionIndex,
			&question, &wordIDs, &room.QuestionStartedAt, &room.QuestionDurationMs,
			&room.CreatedAt, &room.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reverse room: %w", err)
	}
	if len(question) > 0 {
		room.Question = &entity.Question{}
		if err := json.Unmarshal(question, room.Question); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
	}
	if len(wordIDs) > 0 {
		if err := json.Unmarshal(wordIDs, &room.GameWordIDs); err != nil {
			return nil, fmt.Errorf("decode game word ids: %w", err)
		}
	}
	players, err := r.players(ctx, room.ID, true)
	if err != nil {
		return nil, err
	}
	room.Players = players
	return &room, nil
}

func (r *reverseRepository) players(ctx context.Context, roomID int64, withNames bool) ([]entity.ReversePlayer, error) {
	query := `
		SELECT p.user_id, COALESCE(u.name, ''), p.join_order, p.total_score,
			p.connected, p.last_seen_at
		FROM reverse_players p
		JOIN users u ON u.id = p.user_id
		WHERE p.room_id = $1
		ORDER BY p.join_order`
	if !withNames {
		query = `
		SELECT p.user_id, '', p.join_order, p.total_score,
			p.connected, p.last_seen_at
		FROM reverse_players p
		WHERE p.room_id = $1
		ORDER BY p.join_order`
	}
	rows, err := r.pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	defer rows.Close()

	var players []entity.ReversePlayer
	for rows.Next() {
		var p entity.ReversePlayer
		err := rows.Scan(&p.UserID, &p.Name, &p.JoinOrder, &p.TotalScore,
			&p.Connected, &p.LastSeenAt)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *reverseRepository) Update(ctx context.Context, id int64, patch repository.ReverseRoomPatch) (bool, error) {
	var b patchBuilder
	if patch.Status != nil {
		b.set("status", *patch.Status)
	}
	if patch.QuestionIndex != nil {
		b.set("question_index", *patch.QuestionIndex)
	}
	switch {
	case patch.ClearQuestion:
		b.setRaw("question = NULL")
	case patch.Question != nil:
		raw, err := json.Marshal(patch.Question)
		if err != nil {
			return false, fmt.Errorf("encode question: %w", err)
		}
		b.set("question", raw)
	}
	if patch.GameWordIDs != nil {
		raw, err := json.Marshal(patch.GameWordIDs)
		if err != nil {
			return false, fmt.Errorf("encode game word ids: %w", err)
		}
		b.set("game_word_ids", raw)
	}
	if patch.QuestionStartedAt != nil {
		b.set("question_started_at", *patch.QuestionStartedAt)
	}
	if patch.QuestionDurationMs != nil {
		b.set("question_duration_ms", *patch.QuestionDurationMs)
	}
	if b.empty() {
		return true, nil
	}
	b.setRaw("updated_at = now()")

	where := fmt.Sprintf("id = $%d", b.arg(id))
	if patch.IfStatus != nil {
		where += fmt.Sprintf(" AND status = $%d", b.arg(*patch.IfStatus))
	}
	if patch.IfQuestionIndex != nil {
		where += fmt.Sprintf(" AND question_index = $%d", b.arg(*patch.IfQuestionIndex))
	}

	tag, err := r.pool.Exec(ctx, fmt.Sprintf(
		"UPDATE reverse_rooms SET %s WHERE %s", b.clause(), where), b.args...)
	if err != nil {
		return false, fmt.Errorf("update reverse room: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	r.notify(ctx, id)
	return true, nil
}

func (r *reverseRepository) AddPlayer(ctx context.Context, roomID int64, player entity.ReversePlayer) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reverse_players (room_id, user_id, join_order, connected, last_seen_at)
		VALUES ($1, $2, $3, TRUE, $4)
		ON CONFLICT (room_id, user_id) DO UPDATE
		SET connected = TRUE, last_seen_at = EXCLUDED.last_seen_at`,
		roomID, player.UserID, player.JoinOrder, player.LastSeenAt)
	if err != nil {
		return fmt.Errorf("add player: %w", err)
	}
	r.notify(ctx, roomID)
	return nil
}

func (r *reverseRepository) TouchPlayer(ctx context.Context, roomID, userID int64, seenAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reverse_players
		SET connected = TRUE, last_seen_at = $3
		WHERE room_id = $1 AND user_id = $2`, roomID, userID, seenAt)
	if err != nil {
		return fmt.Errorf("touch player: %w", err)
	}
	return nil
}

func (r *reverseRepository) MarkDisconnected(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reverse_players
		SET connected = FALSE
		WHERE connected AND last_seen_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("mark disconnected: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *reverseRepository) AddScore(ctx context.Context, roomID, userID int64, delta int32) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reverse_players
		SET total_score = total_score + $3
		WHERE room_id = $1 AND user_id = $2`, roomID, userID, delta)
	if err != nil {
		return fmt.Errorf("add score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrRoomNotFound
	}
	r.notify(ctx, roomID)
	return nil
}

// Watch re-reads the room on every change notification. The light read
// skips the user join and the game word list; player rows arrive without
// names and entity.ReverseRoom.MergeSnapshot restores them.
func (r *reverseRepository) Watch(ctx context.Context, id int64) (<-chan entity.ReverseRoom, error) {
	return watchRows(ctx, r.pool, reverseChannel, id, func(ctx context.Context) (entity.ReverseRoom, error) {
		var (
			room     entity.ReverseRoom
			question []byte
		)
		err := r.pool.QueryRow(ctx, `
			SELECT id, host_id, status, total_questions, question_index,
				question, question_started_at, question_duration_ms, updated_at
			FROM reverse_rooms WHERE id = $1`, id).
			Scan(&room.ID, &room.HostID, &room.Status,
				&room.TotalQuestions, &room.QuestionIndex,
				&question, &room.QuestionStartedAt, &room.QuestionDurationMs,
				&room.UpdatedAt)
		if err != nil {
			return entity.ReverseRoom{}, err
		}
		if len(question) > 0 {
			room.Question = &entity.Question{}
			if err := json.Unmarshal(question, room.Question); err != nil {
				return entity.ReverseRoom{}, err
			}
		}
		players, err := r.players(ctx, id, false)
		if err != nil {
			return entity.ReverseRoom{}, err
		}
		room.Players = players
		return room, nil
	})
}

func (r *reverseRepository) FinishStaleWaiting(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reverse_rooms
		SET status = $1, updated_at = now()
		WHERE status = $2 AND created_at < $3`,
		entity.ReverseFinished, entity.ReverseWaiting, cutoff)
	if err != nil {
		return 0, fmt.Errorf("finish stale reverse rooms: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *reverseRepository) notify(ctx context.Context, id int64) {
	_, _ = r.pool.Exec(ctx, "SELECT pg_notify($1, $2::text)", reverseChannel, id)
}
