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

const versusChannel = "versus_rooms"

type versusRepository struct{ pool *pgxpool.Pool }

// NewVersusRoomRepository returns the postgres-backed duel room store.
// Word lists are jsonb snapshots; every mutation raises a pg_notify on
// the versus channel so watchers re-read the row.
func NewVersusRoomRepository(pool *pgxpool.Pool) repository.VersusRoomRepository {
	return &versusRepository{pool: pool}
}

func (r *versusRepository) Create(ctx context.Context, room *entity.VersusRoom) (*entity.VersusRoom, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO versus_rooms (code, status, player_a_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		room.Code, room.Status, room.PlayerAID).
		Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, entity.ErrRoomCodeTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create versus room: %w", err)
	}
	r.notify(ctx, room.ID)
	return room, nil
}

const versusColumns = `
	r.id, r.code, r.status, r.player_a_id,
	COALESCE(r.player_b_id, 0), COALESCE(a.name, ''), COALESCE(b.name, ''),
	COALESCE(r.current_turn, 0), r.words_for_a, r.words_for_b,
	r.index_a, r.index_b, r.right_a, r.wrong_a, r.right_b, r.wrong_b,
	r.elapsed_a_ms, r.elapsed_b_ms,
	r.turn_started_at, r.winner_id, r.created_at, r.updated_at`

func (r *versusRepository) Get(ctx context.Context, id int64) (*entity.VersusRoom, error) {
	return r.fetch(ctx, "r.id = $1", id)
}

func (r *versusRepository) GetByCode(ctx context.Context, code string) (*entity.VersusRoom, error) {
	return r.fetch(ctx, "r.code = $1", code)
}

func (r *versusRepository) fetch(ctx context.Context, cond string, arg any) (*entity.VersusRoom, error) {
	var (
		room   entity.VersusRoom
		wordsA []byte
		wordsB []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT `+versusColumns+`
		FROM versus_rooms r
		JOIN users a ON a.id = r.player_a_id
		LEFT JOIN users b ON b.id = r.player_b_id
		WHERE `+cond, arg).
		Scan(&room.ID, &room.Code, &room.Status, &room.PlayerAID,
			&room.PlayerBID, &room.PlayerAName, &room.PlayerBName,
			&room.CurrentTurn, &wordsA, &wordsB,
			&room.IndexA, &room.IndexB, &room.RightA, &room.WrongA,
			&room.RightB, &room.WrongB,
			&room.ElapsedAMs, &room.ElapsedBMs,
			&room.TurnStartedAt, &room.WinnerID, &room.CreatedAt, &room.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get versus room: %w", err)
	}
	if err := decodeWords(wordsA, &room.WordsForA); err != nil {
		return nil, err
	}
	if err := decodeWords(wordsB, &room.WordsForB); err != nil {
		return nil, err
	}
	return &room, nil
}

func decodeWords(raw []byte, into *[]entity.VersusWord) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decode word list: %w", err)
	}
	return nil
}

func (r *versusRepository) Update(ctx context.Context, id int64, patch repository.VersusRoomPatch) error {
	var b patchBuilder
	if patch.Status != nil {
		b.set("status", *patch.Status)
	}
	if patch.PlayerBID != nil {
		b.set("player_b_id", *patch.PlayerBID)
	}
	if patch.CurrentTurn != nil {
		b.set("current_turn", *patch.CurrentTurn)
	}
	if patch.WordsForA != nil {
		raw, err := json.Marshal(patch.WordsForA)
		if err != nil {
			return fmt.Errorf("encode word list: %w", err)
		}
		b.set("words_for_a", raw)
	}
	if patch.WordsForB != nil {
		raw, err := json.Marshal(patch.WordsForB)
		if err != nil {
			return fmt.Errorf("encode word list: %w", err)
		}
		b.set("words_for_b", raw)
	}
	if patch.IndexA != nil {
		b.set("index_a", *patch.IndexA)
	}
	if patch.IndexB != nil {
		b.set("index_b", *patch.IndexB)
	}
	if patch.RightA != nil {
		b.set("right_a", *patch.RightA)
	}
	if patch.WrongA != nil {
		b.set("wrong_a", *patch.WrongA)
	}
	if patch.RightB != nil {
		b.set("right_b", *patch.RightB)
	}
	if patch.WrongB != nil {
		b.set("wrong_b", *patch.WrongB)
	}
	if patch.ElapsedAMs != nil {
		b.set("elapsed_a_ms", *patch.ElapsedAMs)
	}
	if patch.ElapsedBMs != nil {
		b.set("elapsed_b_ms", *patch.ElapsedBMs)
	}
	switch {
	case patch.ClearTurnStartedAt:
		b.setRaw("turn_started_at = NULL")
	case patch.TurnStartedAt != nil:
		b.set("turn_started_at", *patch.TurnStartedAt)
	}
	switch {
	case patch.ClearWinner:
		b.setRaw("winner_id = NULL")
	case patch.WinnerID != nil:
		b.set("winner_id", *patch.WinnerID)
	}
	if b.empty() {
		return nil
	}
	b.setRaw("updated_at = now()")

	idPos := b.arg(id)
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(
		"UPDATE versus_rooms SET %s WHERE id = $%d", b.clause(), idPos), b.args...)
	if err != nil {
		return fmt.Errorf("update versus room: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrRoomNotFound
	}
	r.notify(ctx, id)
	return nil
}

// Watch re-reads the room on every change notification. The light read
// skips the jsonb word lists and the user join, so snapshots carry empty
// names and lists; entity.VersusRoom.MergeSnapshot fills them back in.
func (r *versusRepository) Watch(ctx context.Context, id int64) (<-chan entity.VersusRoom, error) {
	return watchRows(ctx, r.pool, versusChannel, id, func(ctx context.Context) (entity.VersusRoom, error) {
		var room entity.VersusRoom
		err := r.pool.QueryRow(ctx, `
			SELECT id, status, player_a_id, COALESCE(player_b_id, 0),
				COALESCE(current_turn, 0),
				index_a, index_b, right_a, wrong_a, right_b, wrong_b,
				elapsed_a_ms, elapsed_b_ms,
				turn_started_at, winner_id, updated_at
			FROM versus_rooms WHERE id = $1`, id).
			Scan(&room.ID, &room.Status, &room.PlayerAID, &room.PlayerBID,
				&room.CurrentTurn,
				&room.IndexA, &room.IndexB, &room.RightA, &room.WrongA,
				&room.RightB, &room.WrongB,
				&room.ElapsedAMs, &room.ElapsedBMs,
				&room.TurnStartedAt, &room.WinnerID, &room.UpdatedAt)
		return room, err
	})
}

func (r *versusRepository) FinishStaleWaiting(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE versus_rooms
		SET status = $1, updated_at = now()
		WHERE status = $2 AND created_at < $3`,
		entity.RoomFinished, entity.RoomWaiting, cutoff)
	if err != nil {
		return 0, fmt.Errorf("finish stale versus rooms: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *versusRepository) notify(ctx context.Context, id int64) {
	_, _ = r.pool.Exec(ctx, "SELECT pg_notify($1, $2::text)", versusChannel, id)
}
