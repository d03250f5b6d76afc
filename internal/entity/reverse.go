package entity

import "time"

// ReverseStatus is the reverse quiz lifecycle. A started room hops from
// the lobby straight into its first question.
type ReverseStatus string

const (
	ReverseWaiting  ReverseStatus = "waiting"
	ReverseQuestion ReverseStatus = "question"
	ReverseResults  ReverseStatus = "results"
	ReverseFinished ReverseStatus = "finished"
)

// MaxReversePlayers caps the number of seats in a reverse quiz room.
const MaxReversePlayers = 5

// QuestionOption exposes only the word text of an answer choice; the
// definition is carried by the question itself so options cannot leak the
// answer.
type QuestionOption struct {
	WordID int64  `json:"word_id"`
	Word   string `json:"word"`
}

// Question is one multiple-choice round: a definition plus three shuffled
// options, exactly one of which is the target word.
type Question struct {
	WordID     int64            `json:"word_id"`
	Definition string           `json:"definition"`
	Options    []QuestionOption `json:"options"`
}

// ReversePlayer is a seat in a reverse quiz room.
type ReversePlayer struct {
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name,omitempty"`
	JoinOrder  int32     `json:"join_order"`
	TotalScore int32     `json:"total_score"`
	Connected  bool      `json:"connected"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// ReverseRoom is a simultaneous multiple-choice quiz for up to five
// players. The game word list is sampled once at start and never
// regenerated mid-game.
type ReverseRoom struct {
	ID     int64         `json:"id"`
	Code   string        `json:"code"`
	HostID int64         `json:"host_id"`
	Status ReverseStatus `json:"status"`

	TotalQuestions     int32      `json:"total_questions"`
	QuestionIndex      int32      `json:"question_index"`
	Question           *Question  `json:"question,omitempty"`
	GameWordIDs        []int64    `json:"game_word_ids,omitempty"`
	QuestionStartedAt  *time.Time `json:"question_started_at,omitempty"`
	QuestionDurationMs int32      `json:"question_duration_ms"`

	Players []ReversePlayer `json:"players,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Player returns the seat held by the user, if any.
func (r *ReverseRoom) Player(userID int64) (*ReversePlayer, bool) {
	for i := range r.Players {
		if r.Players[i].UserID == userID {
			return &r.Players[i], true
		}
	}
	return nil, false
}

// ReverseAnswer is one player's submission for one question. At most one
// row exists per (room, question, user); duplicates are dropped at the
// store. OnlyCorrect may only be set once every seated player answered.
type ReverseAnswer struct {
	ID             int64     `json:"id"`
	RoomID         int64     `json:"room_id"`
	QuestionIndex  int32     `json:"question_index"`
	UserID         int64     `json:"user_id"`
	SelectedWordID int64     `json:"selected_word_id"`
	Correct        bool      `json:"correct"`
	OnlyCorrect    bool      `json:"only_correct"`
	Points         int32     `json:"points"`
	AnswerTimeMs   int64     `json:"answer_time_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

// PlayerResult is one row of the final ranking.
type PlayerResult struct {
	UserID     int64  `json:"user_id"`
	Name       string `json:"name,omitempty"`
	TotalScore int32  `json:"total_score"`
	RightCount int32  `json:"right_count"`
	WrongCount int32  `json:"wrong_count"`
	BonusCount int32  `json:"bonus_count"`
	AvgTimeMs  int64  `json:"avg_time_ms"`
	MinTimeMs  int64  `json:"min_time_ms"`
	MaxTimeMs  int64  `json:"max_time_ms"`
}
