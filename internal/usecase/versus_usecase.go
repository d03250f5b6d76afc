package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/repository"
	"github.com/eslsoft/vocduel/internal/selection"
)

// DefaultVersusWords is the reading-list length assigned to each side.
const DefaultVersusWords = 10

// VersusUsecase coordinates the two-player duel. Turn switches and the
// finish transition are plain last-write-wins partial updates with no
// concurrency token; with two trusted clients per room this race is
// accepted rather than guarded.
type VersusUsecase interface {
	Create(ctx context.Context, userID int64, name string) (*entity.VersusRoom, error)
	Join(ctx context.Context, code string, userID int64, name string) (*entity.VersusRoom, error)
	Get(ctx context.Context, roomID int64) (*entity.VersusRoom, error)
	Answer(ctx context.Context, roomID, userID int64, correct bool) (*entity.VersusRoom, error)
	Leave(ctx context.Context, roomID, userID int64) error
	Rematch(ctx context.Context, roomID, userID int64) (*entity.VersusRoom, error)
	Watch(ctx context.Context, roomID int64) (<-chan entity.VersusRoom, error)
}

// NewVersusUsecase wires the repositories with the configured list
// length and code-collision retry budget.
func NewVersusUsecase(rooms repository.VersusRoomRepository, words repository.WordRepository, users repository.UserRepository, logger *logrus.Logger, wordsPerGame, codeAttempts int) VersusUsecase {
	if wordsPerGame <= 0 {
		wordsPerGame = DefaultVersusWords
	}
	if codeAttempts <= 0 {
		codeAttempts = DefaultCodeAttempts
	}
	return &versusUsecase{
		rooms:        rooms,
		words:        words,
		users:        users,
		logger:       logger,
		clock:        time.Now,
		codes:        newCodeGenerator(time.Now().UnixNano()),
		codeAttempts: codeAttempts,
		wordsPerGame: wordsPerGame,
		newPicker: func() *selection.Picker {
			return selection.NewPicker(time.Now().UnixNano())
		},
	}
}

type versusUsecase struct {
	rooms  repository.VersusRoomRepository
	words  repository.WordRepository
	users  repository.UserRepository
	logger *logrus.Logger

	clock        func() time.Time
	codes        *codeGenerator
	codeAttempts int
	wordsPerGame int
	newPicker    func() *selection.Picker
}

func (u *versusUsecase) Create(ctx context.Context, userID int64, name string) (*entity.VersusRoom, error) {
	if err := u.users.Ensure(ctx, userID, name); err != nil {
		return nil, err
	}
	for attempt := 0; attempt < u.codeAttempts; attempt++ {
		room := &entity.VersusRoom{
			Code:        u.codes.Next(),
			Status:      entity.RoomWaiting,
			PlayerAID:   userID,
			PlayerAName: name,
		}
		created, err := u.rooms.Create(ctx, room)
		if errors.Is(err, entity.ErrRoomCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return created, nil
	}
	return nil, entity.ErrCreationExhausted
}

// Join seats the user, treating a returning player as a reconnect. The
// second seat filling also starts the game: each side gets a reading
// list sampled from the opponent's pool, so every player ends up being
// quizzed on their own struggling words.
func (u *versusUsecase) Join(ctx context.Context, code string, userID int64, name string) (*entity.VersusRoom, error) {
	if err := u.users.Ensure(ctx, userID, name); err != nil {
		return nil, err
	}
	room, err := u.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if userID == room.PlayerBID && room.PlayerBID != 0 {
		return room, nil
	}
	if userID == room.PlayerAID {
		if room.Status == entity.RoomWaiting {
			return nil, entity.ErrSelfJoin
		}
		return room, nil
	}
	if room.Status != entity.RoomWaiting {
		return nil, entity.ErrRoomUnavailable
	}
	if room.PlayerBID != 0 {
		return nil, entity.ErrRoomFull
	}

	wordsForA, wordsForB, err := u.drawLists(ctx, room.PlayerAID, userID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	active := entity.RoomActive
	zero32 := int32(0)
	zero64 := int64(0)
	patch := repository.VersusRoomPatch{
		Status:        &active,
		PlayerBID:     &userID,
		CurrentTurn:   &room.PlayerAID,
		WordsForA:     wordsForA,
		WordsForB:     wordsForB,
		IndexA:        &zero32,
		IndexB:        &zero32,
		RightA:        &zero32,
		WrongA:        &zero32,
		RightB:        &zero32,
		WrongB:        &zero32,
		ElapsedAMs:    &zero64,
		ElapsedBMs:    &zero64,
		TurnStartedAt: &now,
	}
	if err := u.rooms.Update(ctx, room.ID, patch); err != nil {
		return nil, err
	}
	return u.rooms.Get(ctx, room.ID)
}

func (u *versusUsecase) Get(ctx context.Context, roomID int64) (*entity.VersusRoom, error) {
	return u.rooms.Get(ctx, roomID)
}

func (u *versusUsecase) Answer(ctx context.Context, roomID, userID int64, correct bool) (*entity.VersusRoom, error) {
	room, err := u.rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := room.ApplyAnswer(userID, correct, u.clock()); err != nil {
		return nil, err
	}
	if err := u.rooms.Update(ctx, room.ID, statePatch(room)); err != nil {
		return nil, err
	}
	return room, nil
}

func (u *versusUsecase) Leave(ctx context.Context, roomID, userID int64) error {
	room, err := u.rooms.Get(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.Seated(userID) {
		return entity.ErrUserNotFound
	}
	if room.Status == entity.RoomFinished {
		return nil
	}
	room.Abandon()
	finished := entity.RoomFinished
	return u.rooms.Update(ctx, roomID, repository.VersusRoomPatch{
		Status:             &finished,
		ClearWinner:        true,
		ClearTurnStartedAt: true,
	})
}

// Rematch restarts a finished duel in place: fresh reading lists, zeroed
// counters, same room id and code.
func (u *versusUsecase) Rematch(ctx context.Context, roomID, userID int64) (*entity.VersusRoom, error) {
	room, err := u.rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.Seated(userID) {
		return nil, entity.ErrUserNotFound
	}
	if room.Status != entity.RoomFinished || room.PlayerBID == 0 {
		return nil, entity.ErrRoomUnavailable
	}

	wordsForA, wordsForB, err := u.drawLists(ctx, room.PlayerAID, room.PlayerBID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	active := entity.RoomActive
	zero32 := int32(0)
	zero64 := int64(0)
	patch := repository.VersusRoomPatch{
		Status:        &active,
		CurrentTurn:   &room.PlayerAID,
		WordsForA:     wordsForA,
		WordsForB:     wordsForB,
		IndexA:        &zero32,
		IndexB:        &zero32,
		RightA:        &zero32,
		WrongA:        &zero32,
		RightB:        &zero32,
		WrongB:        &zero32,
		ElapsedAMs:    &zero64,
		ElapsedBMs:    &zero64,
		TurnStartedAt: &now,
		ClearWinner:   true,
	}
	if err := u.rooms.Update(ctx, roomID, patch); err != nil {
		return nil, err
	}
	return u.rooms.Get(ctx, roomID)
}

// Watch delivers reconciled snapshots: each partial notification is
// folded over the last known state via the entity merge policy.
func (u *versusUsecase) Watch(ctx context.Context, roomID int64) (<-chan entity.VersusRoom, error) {
	local, err := u.rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	raw, err := u.rooms.Watch(ctx, roomID)
	if err != nil {
		return nil, err
	}

	out := make(chan entity.VersusRoom, 1)
	go func() {
		defer close(out)
		known := *local
		out <- known
		for snap := range raw {
			known = known.MergeSnapshot(snap)
			select {
			case out <- known:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// drawLists samples each side's reading list from the opponent's pool.
// Nothing is committed when either pool is empty.
func (u *versusUsecase) drawLists(ctx context.Context, playerA, playerB int64) ([]entity.VersusWord, []entity.VersusWord, error) {
	poolA, err := u.words.WordsWithProgress(ctx, playerA)
	if err != nil {
		return nil, nil, err
	}
	poolB, err := u.words.WordsWithProgress(ctx, playerB)
	if err != nil {
		return nil, nil, err
	}
	if len(poolA) == 0 || len(poolB) == 0 {
		return nil, nil, entity.ErrInsufficientWords
	}

	picker := u.newPicker()
	fromB, err := picker.VersusWords(poolB, u.wordsPerGame)
	if err != nil {
		return nil, nil, err
	}
	fromA, err := picker.VersusWords(poolA, u.wordsPerGame)
	if err != nil {
		return nil, nil, err
	}
	return toVersusWords(fromB), toVersusWords(fromA), nil
}

func toVersusWords(words []entity.UserWord) []entity.VersusWord {
	out := make([]entity.VersusWord, 0, len(words))
	for _, w := range words {
		out = append(out, entity.VersusWord{
			WordID:     w.ID,
			Word:       w.Word,
			Definition: w.Definition,
			Hint:       w.Hint,
		})
	}
	return out
}

// statePatch captures the mutable duel state after a transition. Word
// lists, seats and names are never part of it.
func statePatch(room *entity.VersusRoom) repository.VersusRoomPatch {
	patch := repository.VersusRoomPatch{
		Status:      &room.Status,
		CurrentTurn: &room.CurrentTurn,
		IndexA:      &room.IndexA,
		IndexB:      &room.IndexB,
		RightA:      &room.RightA,
		WrongA:      &room.WrongA,
		RightB:      &room.RightB,
		WrongB:      &room.WrongB,
		ElapsedAMs:  &room.ElapsedAMs,
		ElapsedBMs:  &room.ElapsedBMs,
	}
	if room.TurnStartedAt != nil {
		patch.TurnStartedAt = room.TurnStartedAt
	} else {
		patch.ClearTurnStartedAt = true
	}
	if room.WinnerID != nil {
		patch.WinnerID = room.WinnerID
	}
	return patch
}
