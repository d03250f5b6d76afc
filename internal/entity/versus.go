package entity

import "time"

// RoomStatus is the lifecycle state shared by both multiplayer modes.
type RoomStatus string

const (
	RoomWaiting  RoomStatus = "waiting"
	RoomActive   RoomStatus = "active"
	RoomFinished RoomStatus = "finished"
)

// VersusWord is one entry of a reading list, snapshotted at game start so
// later edits to the word pool cannot change a running duel.
type VersusWord struct {
	WordID     int64  `json:"word_id"`
	Word       string `json:"word"`
	Definition string `json:"definition,omitempty"`
	Hint       string `json:"hint,omitempty"`
}

// VersusRoom is a two-player duel. The player holding CurrentTurn is the
// reader: they work through their own list (drawn from the opponent's
// struggling words) while the opponent defines each word. Right/wrong
// counts are therefore credited to the listener, not the reader.
type VersusRoom struct {
	ID     int64      `json:"id"`
	Code   string     `json:"code"`
	Status RoomStatus `json:"status"`

	PlayerAID   int64  `json:"player_a_id"`
	PlayerBID   int64  `json:"player_b_id,omitempty"`
	PlayerAName string `json:"player_a_name,omitempty"`
	PlayerBName string `json:"player_b_name,omitempty"`

	CurrentTurn int64        `json:"current_turn,omitempty"`
	WordsForA   []VersusWord `json:"words_for_a,omitempty"`
	WordsForB   []VersusWord `json:"words_for_b,omitempty"`
	IndexA      int32        `json:"index_a"`
	IndexB      int32        `json:"index_b"`
	RightA      int32        `json:"right_a"`
	WrongA      int32        `json:"wrong_a"`
	RightB      int32        `json:"right_b"`
	WrongB      int32        `json:"wrong_b"`
	ElapsedAMs  int64        `json:"elapsed_a_ms"`
	ElapsedBMs  int64        `json:"elapsed_b_ms"`

	TurnStartedAt *time.Time `json:"turn_started_at,omitempty"`
	WinnerID      *int64     `json:"winner_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Seated reports whether the user occupies a seat in the room.
func (r *VersusRoom) Seated(userID int64) bool {
	return userID != 0 && (userID == r.PlayerAID || userID == r.PlayerBID)
}

// Opponent returns the other seat's user id.
func (r *VersusRoom) Opponent(userID int64) int64 {
	if userID == r.PlayerAID {
		return r.PlayerBID
	}
	return r.PlayerAID
}

// CurrentWord returns the word the reader is about to read aloud.
func (r *VersusRoom) CurrentWord() (VersusWord, bool) {
	words, idx := r.WordsForA, r.IndexA
	if r.CurrentTurn == r.PlayerBID {
		words, idx = r.WordsForB, r.IndexB
	}
	if int(idx) >= len(words) {
		return VersusWord{}, false
	}
	return words[idx], true
}

// ApplyAnswer advances the duel after the listener's attempt at the word
// the reader just read. Only the player holding the turn may act. Updates
// are applied in place; the caller persists the mutated state.
func (r *VersusRoom) ApplyAnswer(userID int64, correct bool, now time.Time) error {
	if r.Status != RoomActive {
		return ErrRoomUnavailable
	}
	if userID != r.CurrentTurn {
		return ErrNotYourTurn
	}

	reader := userID
	opponent := r.Opponent(reader)
	words, idx := r.readerList(reader)
	idx++
	r.setIndex(reader, idx)

	if correct {
		r.credit(opponent, true)
		if int(idx) >= len(words) {
			r.bookElapsed(reader, now)
			r.finishGame(reader, now)
		}
		// Reader keeps the turn and moves on to the next word.
		return nil
	}

	r.credit(opponent, false)
	r.bookElapsed(reader, now)
	if int(idx) >= len(words) {
		r.finishGame(reader, now)
		return nil
	}
	r.CurrentTurn = opponent
	r.TurnStartedAt = &now
	return nil
}

// Abandon ends the duel without a decided winner.
func (r *VersusRoom) Abandon() {
	if r.Status == RoomFinished {
		return
	}
	r.Status = RoomFinished
	r.WinnerID = nil
	r.TurnStartedAt = nil
}

// finishGame settles the duel once one reader has exhausted their list.
// With both lists done the higher right count wins, ties broken by lower
// cumulative time. An early flawless finisher hands the turn over instead
// of ending the game; an early finisher with mistakes forces an immediate
// comparison where the tie favors the finisher.
func (r *VersusRoom) finishGame(finished int64, now time.Time) {
	other := r.Opponent(finished)
	otherWords, otherIdx := r.readerList(other)

	if int(otherIdx) >= len(otherWords) {
		r.Status = RoomFinished
		r.TurnStartedAt = nil
		fRight, _ := r.score(finished)
		oRight, _ := r.score(other)
		switch {
		case fRight > oRight:
			r.setWinner(finished)
		case oRight > fRight:
			r.setWinner(other)
		case r.elapsed(finished) <= r.elapsed(other):
			r.setWinner(finished)
		default:
			r.setWinner(other)
		}
		return
	}

	_, fWrong := r.score(finished)
	if fWrong == 0 {
		// Flawless finish: give the other side a chance to catch up.
		r.CurrentTurn = other
		r.TurnStartedAt = &now
		return
	}

	r.Status = RoomFinished
	r.TurnStartedAt = nil
	fRight, _ := r.score(finished)
	oRight, _ := r.score(other)
	if fRight >= oRight {
		r.setWinner(finished)
	} else {
		r.setWinner(other)
	}
}

func (r *VersusRoom) setWinner(userID int64) {
	winner := userID
	r.WinnerID = &winner
}

func (r *VersusRoom) readerList(userID int64) ([]VersusWord, int32) {
	if userID == r.PlayerAID {
		return r.WordsForA, r.IndexA
	}
	return r.WordsForB, r.IndexB
}

func (r *VersusRoom) setIndex(userID int64, idx int32) {
	if userID == r.PlayerAID {
		r.IndexA = idx
	} else {
		r.IndexB = idx
	}
}

func (r *VersusRoom) credit(userID int64, right bool) {
	switch {
	case userID == r.PlayerAID && right:
		r.RightA++
	case userID == r.PlayerAID:
		r.WrongA++
	case right:
		r.RightB++
	default:
		r.WrongB++
	}
}

func (r *VersusRoom) score(userID int64) (right, wrong int32) {
	if userID == r.PlayerAID {
		return r.RightA, r.WrongA
	}
	return r.RightB, r.WrongB
}

func (r *VersusRoom) elapsed(userID int64) int64 {
	if userID == r.PlayerAID {
		return r.ElapsedAMs
	}
	return r.ElapsedBMs
}

func (r *VersusRoom) bookElapsed(userID int64, now time.Time) {
	if r.TurnStartedAt == nil {
		return
	}
	ms := now.Sub(*r.TurnStartedAt).Milliseconds()
	if ms < 0 {
		ms = 0
	}
	if userID == r.PlayerAID {
		r.ElapsedAMs += ms
	} else {
		r.ElapsedBMs += ms
	}
}
