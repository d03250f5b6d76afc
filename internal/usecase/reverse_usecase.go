package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/repository"
	"github.com/eslsoft/vocduel/internal/selection"
)

// Reverse quiz defaults.
const (
	DefaultReverseQuestions          = 10
	MaxReverseQuestions              = 50
	DefaultQuestionDurationMs  int32 = 15000
	DefaultResultsDelay              = 5 * time.Second
)

// ReverseUsecase coordinates the simultaneous multiple-choice quiz.
// Every protocol step tolerates duplicate and out-of-order calls: answer
// inserts are keyed, the bonus upgrade and the results transition are
// compare-and-set, and Advance is a no-op unless the room still sits on
// the question it was called for.
type ReverseUsecase interface {
	Create(ctx context.Context, hostID int64, name string, totalQuestions int32) (*entity.ReverseRoom, error)
	Join(ctx context.Context, code string, userID int64, name string) (*entity.ReverseRoom, error)
	Get(ctx context.Context, roomID int64) (*entity.ReverseRoom, error)
	Start(ctx context.Context, roomID, userID int64) (*entity.ReverseRoom, error)
	Answer(ctx context.Context, roomID, userID, selectedWordID int64) (*entity.ReverseRoom, error)
	TimeoutAnswer(ctx context.Context, roomID, userID int64) error
	CheckAllAnswered(ctx context.Context, roomID int64) (bool, error)
	Advance(ctx context.Context, roomID int64) (*entity.ReverseRoom, error)
	Results(ctx context.Context, roomID int64) ([]entity.PlayerResult, error)
	Watch(ctx context.Context, roomID int64) (<-chan entity.ReverseRoom, error)
}

// NewReverseUsecase wires the repositories with the configured question
// count, per-question timer and code-collision retry budget.
func NewReverseUsecase(rooms repository.ReverseRoomRepository, answers repository.ReverseAnswerRepository, words repository.WordRepository, users repository.UserRepository, logger *logrus.Logger, defaultQuestions, questionDurationMs, codeAttempts int) ReverseUsecase {
	if defaultQuestions <= 0 {
		defaultQuestions = DefaultReverseQuestions
	}
	if questionDurationMs <= 0 {
		questionDurationMs = int(DefaultQuestionDurationMs)
	}
	if codeAttempts <= 0 {
		codeAttempts = DefaultCodeAttempts
	}
	return &reverseUsecase{
		rooms:            rooms,
		answers:          answers,
		words:            words,
		users:            users,
		logger:           logger,
		defaultQuestions: int32(defaultQuestions),
		durationMs:       int32(questionDurationMs),
		clock:            time.Now,
		codes:            newCodeGenerator(time.Now().UnixNano()),
		codeAttempts:     codeAttempts,
		resultsDelay:     DefaultResultsDelay,
		newPicker: func() *selection.Picker {
			return selection.NewPicker(time.Now().UnixNano())
		},
	}
}

type reverseUsecase struct {
	rooms   repository.ReverseRoomRepository
	answers repository.ReverseAnswerRepository
	words   repository.WordRepository
	users   repository.UserRepository
	logger  *logrus.Logger

	defaultQuestions int32
	durationMs       int32

	clock        func() time.Time
	codes        *codeGenerator
	codeAttempts int
	resultsDelay time.Duration
	newPicker    func() *selection.Picker

	// afterResults lets tests intercept the auto-advance timer.
	afterResults func(roomID int64)
}

func (u *reverseUsecase) Create(ctx context.Context, hostID int64, name string, totalQuestions int32) (*entity.ReverseRoom, error) {
	if err := u.users.Ensure(ctx, hostID, name); err != nil {
		return nil, err
	}
	if totalQuestions <= 0 {
		totalQuestions = u.defaultQuestions
	}
	if totalQuestions > MaxReverseQuestions {
		totalQuestions = MaxReverseQuestions
	}

	now := u.clock()
	for attempt := 0; attempt < u.codeAttempts; attempt++ {
		room := &entity.ReverseRoom{
			Code:               u.codes.Next(),
			HostID:             hostID,
			Status:             entity.ReverseWaiting,
			TotalQuestions:     totalQuestions,
			QuestionDurationMs: u.durationMs,
			Players: []entity.ReversePlayer{{
				UserID:     hostID,
				Name:       name,
				JoinOrder:  1,
				Connected:  true,
				LastSeenAt: now,
			}},
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

// Join seats the user in the lobby. A returning player is a liveness
// refresh, not a state change; new seats are rejected once the lobby is
// full or the quiz left the waiting state.
func (u *reverseUsecase) Join(ctx context.Context, code string, userID int64, name string) (*entity.ReverseRoom, error) {
	if err := u.users.Ensure(ctx, userID, name); err != nil {
		return nil, err
	}
	room, err := u.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if _, ok := room.Player(userID); ok {
		if err := u.rooms.TouchPlayer(ctx, room.ID, userID, u.clock()); err != nil {
			return nil, err
		}
		return u.rooms.Get(ctx, room.ID)
	}
	if room.Status != entity.ReverseWaiting {
		return nil, entity.ErrRoomUnavailable
	}
	if len(room.Players) >= entity.MaxReversePlayers {
		return nil, entity.ErrRoomFull
	}

	player := entity.ReversePlayer{
		UserID:     userID,
		Name:       name,
		JoinOrder:  int32(len(room.Players) + 1),
		Connected:  true,
		LastSeenAt: u.clock(),
	}
	if err := u.rooms.AddPlayer(ctx, room.ID, player); err != nil {
		return nil, err
	}
	return u.rooms.Get(ctx, room.ID)
}

func (u *reverseUsecase) Get(ctx context.Context, roomID int64) (*entity.ReverseRoom, error) {
	return u.rooms.Get(ctx, roomID)
}

// Start samples the fixed game word list and serves question zero. Host
// only; needs enough words for the quiz and for distractor generation.
func (u *reverseUsecase) Start(ctx context.Context, roomID, userID int64) (*entity.ReverseRoom, error) {
	room, err := u.rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if userID != room.HostID {
		return nil, entity.ErrNotHost
	}
	if room.Status != entity.ReverseWaiting {
		return nil, entity.ErrRoomUnavailable
	}

	pool, err := u.words.Pool(ctx)
	if err != nil {
		return nil, err
	}
	if len(pool) < int(room.TotalQuestions) || len(pool) < selection.QuestionOptionCount {
		return nil, entity.ErrInsufficientWords
	}

	picker := u.newPicker()
	game, err := picker.RandomWords(pool, int(room.TotalQuestions))
	if err != nil {
		return nil, err
	}
	question, err := picker.BuildQuestion(game[0], pool)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	status := entity.ReverseQuestion
	waiting := entity.ReverseWaiting
	zero := int32(0)
	patch := repository.ReverseRoomPatch{
		Status:            &status,
		QuestionIndex:     &zero,
		Question:          question,
		GameWordIDs:       lo.Map(game, func(w entity.UserWord, _ int) int64 { return w.ID }),
		QuestionStartedAt: &now,
		IfStatus:          &waiting,
	}
	if _, err := u.rooms.Update(ctx, roomID, patch); err != nil {
		return nil, err
	}
	return u.rooms.Get(ctx, roomID)
}

// Answer records one submission. Duplicates are silently dropped; a
// correct answer earns one point through an atomic increment. Once the
// last seated player answers, the sole-correct bonus and the results
// transition are evaluated.
func (u *reverseUsecase) Answer(ctx context.Context, roomID, userID, selectedWordID int64) (*entity.ReverseRoom, error) {
	room, err := u.rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if _, ok := room.Player(userID); !ok {
		return nil, entity.ErrRoomUnavailable
	}
	if room.Status != entity.ReverseQuestion || room.Question == nil {
		// The round already moved on; treat the late submission as the
		// no-op a duplicate would be.
		return room, nil
	}

	now := u.clock()
	elapsed := int64(0)
	if room.QuestionStartedAt != nil {
		elapsed = now.Sub(*room.QuestionStartedAt).Milliseconds()
		if elapsed < 0 {
			elapsed = 0
		}
	}
	correct := selectedWordID != 0 && selectedWordID == room.Question.WordID
	points := int32(0)
	if correct {
		points = 1
	}

	inserted, err := u.answers.Insert(ctx, &entity.ReverseAnswer{
		RoomID:         roomID,
		QuestionIndex:  room.QuestionIndex,
		UserID:         userID,
		SelectedWordID: selectedWordID,
		Correct:        correct,
		Points:         points,
		AnswerTimeMs:   elapsed,
		CreatedAt:      now,
	})
	if err != nil {
		return nil, err
	}
	if !inserted {
		return room, nil
	}
	if correct {
		if err := u.rooms.AddScore(ctx, roomID, userID, 1); err != nil {
			return nil, err
		}
	}

	if _, err := u.evaluateQuestion(ctx, roomID); err != nil {
		return nil, err
	}
	return u.rooms.Get(ctx, roomID)
}

// TimeoutAnswer auto-submits an invalid selection for a player whose
// countdown ran out, so the round can still complete.
func (u *reverseUsecase) TimeoutAnswer(ctx context.Context, roomID, userID int64) error {
	_, err := u.Answer(ctx, roomID, userID, 0)
	return err
}

// CheckAllAnswered re-runs the round-completion check. Non-host clients
// poll this as a fallback while they have an outstanding answer; it is
// idempotent against its own completion condition.
func (u *reverseUsecase) CheckAllAnswered(ctx context.Context, roomID int64) (bool, error) {
	return u.evaluateQuestion(ctx, roomID)
}

func (u *reverseUsecase) evaluateQuestion(ctx context.Context, roomID int64) (bool, error) {
	room, err := u.rooms.Get(ctx, roomID)
	if err != nil {
		return false, err
	}
	if room.Status != entity.ReverseQuestion {
		return false, nil
	}

	answers, err := u.answers.ForQuestion(ctx, roomID, room.QuestionIndex)
	if err != nil {
		return false, err
	}
	if len(answers) < len(room.Players) {
		return false, nil
	}

	correct := lo.Filter(answers, func(a entity.ReverseAnswer, _ int) bool { return a.Correct })
	if len(correct) == 1 {
		upgraded, err := u.answers.UpgradeSoleCorrect(ctx, roomID, room.QuestionIndex, correct[0].UserID)
		if err != nil {
			return false, err
		}
		if upgraded {
			if err := u.rooms.AddScore(ctx, roomID, correct[0].UserID, 1); err != nil {
				return false, err
			}
		}
	}

	results := entity.ReverseResults
	question := entity.ReverseQuestion
	applied, err := u.rooms.Update(ctx, roomID, repository.ReverseRoomPatch{
		Status:          &results,
		IfStatus:        &question,
		IfQuestionIndex: &room.QuestionIndex,
	})
	if err != nil {
		return false, err
	}
	if applied {
		u.scheduleAdvance(roomID)
	}
	return true, nil
}

// scheduleAdvance drives the room forward after the results delay. The
// guarded Advance makes it safe for several clients to race here.
func (u *reverseUsecase) scheduleAdvance(roomID int64) {
	if u.afterResults != nil {
		u.afterResults(roomID)
		return
	}
	time.AfterFunc(u.resultsDelay, func() {
		if _, err := u.Advance(context.Background(), roomID); err != nil {
			u.logger.WithError(err).WithField("room", roomID).Warn("auto-advance failed")
		}
	})
}

// Advance moves a room in results to the next question, or to finished
// when the quiz is exhausted. Calling it out of phase is a no-op.
func (u *reverseUsecase) Advance(ctx context.Context, roomID int64) (*entity.ReverseRoom, error) {
	room, err := u.rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status != entity.ReverseResults {
		return room, nil
	}

	results := entity.ReverseResults
	next := room.QuestionIndex + 1
	if next >= room.TotalQuestions {
		finished := entity.ReverseFinished
		if _, err := u.rooms.Update(ctx, roomID, repository.ReverseRoomPatch{
			Status:          &finished,
			ClearQuestion:   true,
			IfStatus:        &results,
			IfQuestionIndex: &room.QuestionIndex,
		}); err != nil {
			return nil, err
		}
		return u.rooms.Get(ctx, roomID)
	}

	pool, err := u.words.Pool(ctx)
	if err != nil {
		return nil, err
	}
	target, found := lo.Find(pool, func(w entity.UserWord) bool { return w.ID == room.GameWordIDs[next] })
	if !found {
		return nil, entity.ErrWordNotFound
	}
	question, err := u.newPicker().BuildQuestion(target, pool)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	status := entity.ReverseQuestion
	if _, err := u.rooms.Update(ctx, roomID, repository.ReverseRoomPatch{
		Status:            &status,
		QuestionIndex:     &next,
		Question:          question,
		QuestionStartedAt: &now,
		IfStatus:          &results,
		IfQuestionIndex:   &room.QuestionIndex,
	}); err != nil {
		return nil, err
	}
	return u.rooms.Get(ctx, roomID)
}

// Results computes the final ranking from the full answer history.
func (u *reverseUsecase) Results(ctx context.Context, roomID int64) ([]entity.PlayerResult, error) {
	room, err := u.rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	answers, err := u.answers.ForRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	byUser := lo.GroupBy(answers, func(a entity.ReverseAnswer) int64 { return a.UserID })
	results := make([]entity.PlayerResult, 0, len(room.Players))
	for _, p := range room.Players {
		result := entity.PlayerResult{
			UserID:     p.UserID,
			Name:       p.Name,
			TotalScore: p.TotalScore,
		}
		var sum int64
		for i, a := range byUser[p.UserID] {
			if a.Correct {
				result.RightCount++
			} else {
				result.WrongCount++
			}
			if a.OnlyCorrect {
				result.BonusCount++
			}
			sum += a.AnswerTimeMs
			if i == 0 || a.AnswerTimeMs < result.MinTimeMs {
				result.MinTimeMs = a.AnswerTimeMs
			}
			if a.AnswerTimeMs > result.MaxTimeMs {
				result.MaxTimeMs = a.AnswerTimeMs
			}
		}
		if n := len(byUser[p.UserID]); n > 0 {
			result.AvgTimeMs = sum / int64(n)
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore > results[j].TotalScore
		}
		return playerJoinOrder(room, results[i].UserID) < playerJoinOrder(room, results[j].UserID)
	})
	return results, nil
}

// Watch delivers reconciled snapshots, folding partial notifications
// over the last known state via the entity merge policy.
func (u *reverseUsecase) Watch(ctx context.Context, roomID int64) (<-chan entity.ReverseRoom, error) {
	local, err := u.rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	raw, err := u.rooms.Watch(ctx, roomID)
	if err != nil {
		return nil, err
	}

	out := make(chan entity.ReverseRoom, 1)
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

func playerJoinOrder(room *entity.ReverseRoom, userID int64) int32 {
	if p, ok := room.Player(userID); ok {
		return p.JoinOrder
	}
	return int32(len(room.Players) + 1)
}
