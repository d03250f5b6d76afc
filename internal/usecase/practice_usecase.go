package usecase

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/repository"
	"github.com/eslsoft/vocduel/internal/session"
)

// PracticeUsecase owns the in-memory practice sessions. Progress writes
// after each answer are best-effort: a store failure is logged and
// swallowed so the learner's flow is never interrupted, accepting that
// progress can be lost while the store is down.
type PracticeUsecase interface {
	Start(ctx context.Context, userID int64) (*session.Session, error)
	Get(ctx context.Context, sessionID string) (*session.Session, error)
	Answer(ctx context.Context, sessionID string, right bool) (*session.Session, error)
	Stop(ctx context.Context, sessionID string) error
}

// NewPracticeUsecase wires the repositories with default behaviour.
func NewPracticeUsecase(words repository.WordRepository, settings repository.SettingsRepository, logger *logrus.Logger, lessonSize int) PracticeUsecase {
	if lessonSize <= 0 {
		lessonSize = session.DefaultLessonSize
	}
	return &practiceUsecase{
		words:      words,
		settings:   settings,
		logger:     logger,
		lessonSize: lessonSize,
		sessions:   make(map[string]*session.Session),
		clock:      time.Now,
		newID:      uuid.NewString,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

type practiceUsecase struct {
	words      repository.WordRepository
	settings   repository.SettingsRepository
	logger     *logrus.Logger
	lessonSize int

	mu       sync.Mutex
	sessions map[string]*session.Session

	clock  func() time.Time
	newID  func() string
	newRNG func() *rand.Rand
}

func (u *practiceUsecase) Start(ctx context.Context, userID int64) (*session.Session, error) {
	settings, err := u.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	due, err := u.words.DueWords(ctx, userID, u.clock())
	if err != nil {
		return nil, err
	}

	sess, err := session.New(u.newID(), userID, due, settings, u.newRNG(), u.lessonSize)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	u.sessions[sess.ID] = sess
	u.mu.Unlock()
	return sess, nil
}

func (u *practiceUsecase) Get(ctx context.Context, sessionID string) (*session.Session, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	sess, ok := u.sessions[sessionID]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return sess, nil
}

func (u *practiceUsecase) Answer(ctx context.Context, sessionID string, right bool) (*session.Session, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	sess, ok := u.sessions[sessionID]
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	updated, err := sess.Answer(right, u.clock())
	if err != nil {
		return nil, err
	}

	// Best-effort persistence; the in-memory session is authoritative.
	if err := u.words.UpdateProgress(ctx, &updated); err != nil {
		u.logger.WithError(err).WithFields(logrus.Fields{
			"session": sessionID,
			"word":    updated.ID,
		}).Warn("progress write failed, session continues")
	}
	return sess, nil
}

func (u *practiceUsecase) Stop(ctx context.Context, sessionID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	sess, ok := u.sessions[sessionID]
	if !ok {
		return entity.ErrSessionNotFound
	}
	sess.Stop()
	delete(u.sessions, sessionID)
	return nil
}
