package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/repository"
)

// In-memory fakes mirroring the store contracts, including code
// uniqueness, keyed answer inserts and the guarded updates.

type fakeUsers struct {
	mu    sync.RWMutex
	names map[int64]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{names: make(map[int64]string)}
}

func (f *fakeUsers) Ensure(_ context.Context, id int64, name string) error {
	if id <= 0 {
		return entity.ErrUserNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if name != "" || f.names[id] == "" {
		f.names[id] = name
	}
	return nil
}

func (f *fakeUsers) Get(_ context.Context, id int64) (*entity.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	name, ok := f.names[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return &entity.User{ID: id, Name: name}, nil
}

type fakeWords struct {
	mu       sync.RWMutex
	pool     []entity.UserWord
	progress map[int64][]entity.UserWord
	updated  []entity.UserWord
	nextID   int64
}

func newFakeWords() *fakeWords {
	return &fakeWords{progress: make(map[int64][]entity.UserWord), nextID: 1}
}

func (f *fakeWords) Add(_ context.Context, word *entity.UserWord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	copied := *word
	copied.ID = id
	f.pool = append(f.pool, copied)
	return id, nil
}

func (f *fakeWords) List(_ context.Context, query *repository.ListWordsQuery) ([]entity.UserWord, int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]entity.UserWord(nil), f.pool...), int64(len(f.pool)), nil
}

func (f *fakeWords) Pool(_ context.Context) ([]entity.UserWord, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]entity.UserWord(nil), f.pool...), nil
}

func (f *fakeWords) WordsWithProgress(_ context.Context, userID int64) ([]entity.UserWord, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]entity.UserWord(nil), f.progress[userID]...), nil
}

func (f *fakeWords) DueWords(_ context.Context, userID int64, now time.Time) ([]entity.UserWord, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var due []entity.UserWord
	for _, w := range f.progress[userID] {
		if w.Due(now) {
			due = append(due, w)
		}
	}
	return due, nil
}

func (f *fakeWords) UpdateProgress(_ context.Context, word *entity.UserWord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, *word)
	return nil
}

func (f *fakeWords) SetLevel(_ context.Context, userID, wordID int64, levelID int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, w := range f.progress[userID] {
		if w.ID == wordID {
			f.progress[userID][i].LevelID = levelID
			f.progress[userID][i].StreakCorrect = 0
			return nil
		}
	}
	return entity.ErrWordNotFound
}

func (f *fakeWords) Stats(_ context.Context, userID int64, now time.Time, masteredLevelID int32) (*entity.UserStats, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	stats := &entity.UserStats{}
	for _, w := range f.progress[userID] {
		stats.TotalWords++
		if w.Due(now) {
			stats.DueWords++
		}
		if w.LevelID >= masteredLevelID {
			stats.MasteredWords++
		}
		stats.TotalRight += int64(w.TotalRight)
		stats.TotalWrong += int64(w.TotalWrong)
	}
	return stats, nil
}

type fakeSettings struct {
	mu       sync.RWMutex
	settings entity.SRSSettings
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{settings: entity.DefaultSettings()}
}

func (f *fakeSettings) Load(context.Context) (entity.SRSSettings, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.settings, nil
}

func (f *fakeSettings) Save(_ context.Context, settings entity.SRSSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = settings
	return nil
}

type fakeVersusRooms struct {
	mu     sync.RWMutex
	rooms  map[int64]*entity.VersusRoom
	nextID int64
}

func newFakeVersusRooms() *fakeVersusRooms {
	return &fakeVersusRooms{rooms: make(map[int64]*entity.VersusRoom), nextID: 1}
}

func (f *fakeVersusRooms) Create(_ context.Context, room *entity.VersusRoom) (*entity.VersusRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rooms {
		if existing.Code == room.Code {
			return nil, entity.ErrRoomCodeTaken
		}
	}
	copied := *room
	copied.ID = f.nextID
	f.nextID++
	f.rooms[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (f *fakeVersusRooms) Get(_ context.Context, id int64) (*entity.VersusRoom, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[id]
	if !ok {
		return nil, entity.ErrRoomNotFound
	}
	out := *room
	return &out, nil
}

func (f *fakeVersusRooms) GetByCode(_ context.Context, code string) (*entity.VersusRoom, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, room := range f.rooms {
		if room.Code == code {
			out := *room
			return &out, nil
		}
	}
	return nil, entity.ErrRoomNotFound
}

func (f *fakeVersusRooms) Update(_ context.Context, id int64, patch repository.VersusRoomPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok {
		return entity.ErrRoomNotFound
	}
	if patch.Status != nil {
		room.Status = *patch.Status
	}
	if patch.PlayerBID != nil {
		room.PlayerBID = *patch.PlayerBID
	}
	if patch.CurrentTurn != nil {
		room.CurrentTurn = *patch.CurrentTurn
	}
	if patch.WordsForA != nil {
		room.WordsForA = patch.WordsForA
	}
	if patch.WordsForB != nil {
		room.WordsForB = patch.WordsForB
	}
	if patch.IndexA != nil {
		room.IndexA = *patch.IndexA
	}
	if patch.IndexB != nil {
		room.IndexB = *patch.IndexB
	}
	if patch.RightA != nil {
		room.RightA = *patch.RightA
	}
	if patch.WrongA != nil {
		room.WrongA = *patch.WrongA
	}
	if patch.RightB != nil {
		room.RightB = *patch.RightB
	}
	if patch.WrongB != nil {
		room.WrongB = *patch.WrongB
	}
	if patch.ElapsedAMs != nil {
		room.ElapsedAMs = *patch.ElapsedAMs
	}
	if patch.ElapsedBMs != nil {
		room.ElapsedBMs = *patch.ElapsedBMs
	}
	if patch.ClearTurnStartedAt {
		room.TurnStartedAt = nil
	} else if patch.TurnStartedAt != nil {
		at := *patch.TurnStartedAt
		room.TurnStartedAt = &at
	}
	if patch.ClearWinner {
		room.WinnerID = nil
	} else if patch.WinnerID != nil {
		winner := *patch.WinnerID
		room.WinnerID = &winner
	}
	return nil
}

func (f *fakeVersusRooms) Watch(ctx context.Context, id int64) (<-chan entity.VersusRoom, error) {
	ch := make(chan entity.VersusRoom)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (f *fakeVersusRooms) FinishStaleWaiting(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, room := range f.rooms {
		if room.Status == entity.RoomWaiting && room.CreatedAt.Before(cutoff) {
			room.Status = entity.RoomFinished
			n++
		}
	}
	return n, nil
}

type fakeReverseRooms struct {
	mu     sync.RWMutex
	rooms  map[int64]*entity.ReverseRoom
	nextID int64
}

func newFakeReverseRooms() *fakeReverseRooms {
	return &fakeReverseRooms{rooms: make(map[int64]*entity.ReverseRoom), nextID: 1}
}

func copyReverse(room *entity.ReverseRoom) *entity.ReverseRoom {
	out := *room
	out.Players = append([]entity.ReversePlayer(nil), room.Players...)
	out.GameWordIDs = append([]int64(nil), room.GameWordIDs...)
	if room.Question != nil {
		q := *room.Question
		out.Question = &q
	}
	return &out
}

func (f *fakeReverseRooms) Create(_ context.Context, room *entity.ReverseRoom) (*entity.ReverseRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rooms {
		if existing.Code == room.Code {
			return nil, entity.ErrRoomCodeTaken
		}
	}
	copied := copyReverse(room)
	copied.ID = f.nextID
	f.nextID++
	f.rooms[copied.ID] = copied
	return copyReverse(copied), nil
}

func (f *fakeReverseRooms) Get(_ context.Context, id int64) (*entity.ReverseRoom, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[id]
	if !ok {
		return nil, entity.ErrRoomNotFound
	}
	return copyReverse(room), nil
}

func (f *fakeReverseRooms) GetByCode(_ context.Context, code string) (*entity.ReverseRoom, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, room := range f.rooms {
		if room.Code == code {
			return copyReverse(room), nil
		}
	}
	return nil, entity.ErrRoomNotFound
}

func (f *fakeReverseRooms) Update(_ context.Context, id int64, patch repository.ReverseRoomPatch) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok {
		return false, entity.ErrRoomNotFound
	}
	if patch.IfStatus != nil && room.Status != *patch.IfStatus {
		return false, nil
	}
	if patch.IfQuestionIndex != nil && room.QuestionIndex != *patch.IfQuestionIndex {
		return false, nil
	}
	if patch.Status != nil {
		room.Status = *patch.Status
	}
	if patch.QuestionIndex != nil {
		room.QuestionIndex = *patch.QuestionIndex
	}
	if patch.ClearQuestion {
		room.Question = nil
	} else if patch.Question != nil {
		q := *patch.Question
		room.Question = &q
	}
	if patch.GameWordIDs != nil {
		room.GameWordIDs = append([]int64(nil), patch.GameWordIDs...)
	}
	if patch.QuestionStartedAt != nil {
		at := *patch.QuestionStartedAt
		room.QuestionStartedAt = &at
	}
	if patch.QuestionDurationMs != nil {
		room.QuestionDurationMs = *patch.QuestionDurationMs
	}
	return true, nil
}

func (f *fakeReverseRooms) AddPlayer(_ context.Context, roomID int64, player entity.ReversePlayer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[roomID]
	if !ok {
		return entity.ErrRoomNotFound
	}
	room.Players = append(room.Players, player)
	return nil
}

func (f *fakeReverseRooms) TouchPlayer(_ context.Context, roomID, userID int64, seenAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[roomID]
	if !ok {
		return entity.ErrRoomNotFound
	}
	for i := range room.Players {
		if room.Players[i].UserID == userID {
			room.Players[i].Connected = true
			room.Players[i].LastSeenAt = seenAt
		}
	}
	return nil
}

func (f *fakeReverseRooms) MarkDisconnected(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, room := range f.rooms {
		for i := range room.Players {
			if room.Players[i].Connected && room.Players[i].LastSeenAt.Before(cutoff) {
				room.Players[i].Connected = false
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeReverseRooms) AddScore(_ context.Context, roomID, userID int64, delta int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[roomID]
	if !ok {
		return entity.ErrRoomNotFound
	}
	for i := range room.Players {
		if room.Players[i].UserID == userID {
			room.Players[i].TotalScore += delta
			return nil
		}
	}
	return entity.ErrRoomNotFound
}

func (f *fakeReverseRooms) Watch(ctx context.Context, id int64) (<-chan entity.ReverseRoom, error) {
	ch := make(chan entity.ReverseRoom)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (f *fakeReverseRooms) FinishStaleWaiting(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, room := range f.rooms {
		if room.Status == entity.ReverseWaiting && room.CreatedAt.Before(cutoff) {
			room.Status = entity.ReverseFinished
			n++
		}
	}
	return n, nil
}

type answerKey struct {
	roomID        int64
	questionIndex int32
	userID        int64
}

type fakeAnswers struct {
	mu      sync.RWMutex
	answers map[answerKey]*entity.ReverseAnswer
	nextID  int64
}

func newFakeAnswers() *fakeAnswers {
	return &fakeAnswers{answers: make(map[answerKey]*entity.ReverseAnswer), nextID: 1}
}

func (f *fakeAnswers) Insert(_ context.Context, answer *entity.ReverseAnswer) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := answerKey{answer.RoomID, answer.QuestionIndex, answer.UserID}
	if _, ok := f.answers[key]; ok {
		return false, nil
	}
	copied := *answer
	copied.ID = f.nextID
	f.nextID++
	f.answers[key] = &copied
	return true, nil
}

func (f *fakeAnswers) ForQuestion(_ context.Context, roomID int64, questionIndex int32) ([]entity.ReverseAnswer, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []entity.ReverseAnswer
	for key, a := range f.answers {
		if key.roomID == roomID && key.questionIndex == questionIndex {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAnswers) ForRoom(_ context.Context, roomID int64) ([]entity.ReverseAnswer, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []entity.ReverseAnswer
	for key, a := range f.answers {
		if key.roomID == roomID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAnswers) UpgradeSoleCorrect(_ context.Context, roomID int64, questionIndex int32, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.answers[answerKey{roomID, questionIndex, userID}]
	if !ok || !a.Correct || a.OnlyCorrect {
		return false, nil
	}
	a.OnlyCorrect = true
	a.Points++
	return true, nil
}
