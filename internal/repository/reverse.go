package repository

import (
	"context"
	"time"

	"github.com/eslsoft/vocduel/internal/entity"
)

// ReverseRoomPatch is a partial-field update for a reverse quiz room.
// The optional guards turn the update into a compare-and-set: when either
// is set the update only applies while the room still matches, and Update
// reports whether it did. Racing clients re-running the same transition
// therefore collapse into harmless no-ops.
type ReverseRoomPatch struct {
	Status             *entity.ReverseStatus
	QuestionIndex      *int32
	Question           *entity.Question
	ClearQuestion      bool
	GameWordIDs        []int64
	QuestionStartedAt  *time.Time
	QuestionDurationMs *int32

	IfStatus        *entity.ReverseStatus
	IfQuestionIndex *int32
}

// ReverseRoomRepository is the room store for reverse quizzes. Player
// score changes go through AddScore, an atomic increment, never a
// read-modify-write of the seat row.
type ReverseRoomRepository interface {
	Create(ctx context.Context, room *entity.ReverseRoom) (*entity.ReverseRoom, error)
	Get(ctx context.Context, id int64) (*entity.ReverseRoom, error)
	GetByCode(ctx context.Context, code string) (*entity.ReverseRoom, error)
	Update(ctx context.Context, id int64, patch ReverseRoomPatch) (bool, error)

	AddPlayer(ctx context.Context, roomID int64, player entity.ReversePlayer) error
	TouchPlayer(ctx context.Context, roomID, userID int64, seenAt time.Time) error
	MarkDisconnected(ctx context.Context, cutoff time.Time) (int64, error)
	AddScore(ctx context.Context, roomID, userID int64, delta int32) error

	// Watch streams room snapshots on every change. Player rows arrive
	// without names; reconcile through entity.ReverseRoom.MergeSnapshot.
	Watch(ctx context.Context, id int64) (<-chan entity.ReverseRoom, error)

	FinishStaleWaiting(ctx context.Context, cutoff time.Time) (int64, error)
}

// ReverseAnswerRepository stores one row per (room, question, user).
// Insert reports false for a duplicate instead of failing, keeping
// double-clicks and retries idempotent.
type ReverseAnswerRepository interface {
	Insert(ctx context.Context, answer *entity.ReverseAnswer) (bool, error)
	ForQuestion(ctx context.Context, roomID int64, questionIndex int32) ([]entity.ReverseAnswer, error)
	ForRoom(ctx context.Context, roomID int64) ([]entity.ReverseAnswer, error)

	// UpgradeSoleCorrect bumps the answer to two points, guarded so a
	// racing duplicate award cannot commit twice.
	UpgradeSoleCorrect(ctx context.Context, roomID int64, questionIndex int32, userID int64) (bool, error)
}
