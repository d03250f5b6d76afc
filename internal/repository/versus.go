package repository

import (
	"context"
	"time"

	"github.com/eslsoft/vocduel/internal/entity"
)

// VersusRoomPatch is a partial-field update for a versus room. Nil fields
// are left untouched; the store never does a whole-row replace, matching
// the single-round-trip read-then-write protocol every client follows.
type VersusRoomPatch struct {
	Status      *entity.RoomStatus
	PlayerBID   *int64
	CurrentTurn *int64

	WordsForA []entity.VersusWord
	WordsForB []entity.VersusWord

	IndexA     *int32
	IndexB     *int32
	RightA     *int32
	WrongA     *int32
	RightB     *int32
	WrongB     *int32
	ElapsedAMs *int64
	ElapsedBMs *int64

	TurnStartedAt      *time.Time
	ClearTurnStartedAt bool
	WinnerID           *int64
	ClearWinner        bool
}

// VersusRoomRepository is the room store for duels. Every mutation also
// fans a change notification out to watchers. Create surfaces a room-code
// uniqueness violation as ErrRoomCodeTaken so the caller can retry.
type VersusRoomRepository interface {
	Create(ctx context.Context, room *entity.VersusRoom) (*entity.VersusRoom, error)
	Get(ctx context.Context, id int64) (*entity.VersusRoom, error)
	GetByCode(ctx context.Context, code string) (*entity.VersusRoom, error)
	Update(ctx context.Context, id int64, patch VersusRoomPatch) error

	// Watch streams room snapshots on every change. Snapshots come from a
	// light read that omits word lists and joined names; consumers must
	// reconcile through entity.VersusRoom.MergeSnapshot.
	Watch(ctx context.Context, id int64) (<-chan entity.VersusRoom, error)

	FinishStaleWaiting(ctx context.Context, cutoff time.Time) (int64, error)
}
