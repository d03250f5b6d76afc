package entity

import (
	"errors"
	"testing"
	"time"
)

func activeRoom() *VersusRoom {
	started := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	return &VersusRoom{
		ID:          7,
		Code:        "ABCD",
		Status:      RoomActive,
		PlayerAID:   1,
		PlayerBID:   2,
		CurrentTurn: 1,
		WordsForA: []VersusWord{
			{WordID: 11, Word: "ephemeral"},
			{WordID: 12, Word: "ubiquitous"},
		},
		WordsForB: []VersusWord{
			{WordID: 21, Word: "gregarious"},
			{WordID: 22, Word: "laconic"},
		},
		TurnStartedAt: &started,
	}
}

func TestApplyAnswerRejectsOutOfTurn(t *testing.T) {
	room := activeRoom()
	if err := room.ApplyAnswer(2, true, time.Now()); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("err = %v, want ErrNotYourTurn", err)
	}

	room.Status = RoomWaiting
	if err := room.ApplyAnswer(1, true, time.Now()); !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("err = %v, want ErrRoomUnavailable", err)
	}
}

func TestApplyAnswerCorrectCreditsListenerAndKeepsTurn(t *testing.T) {
	room := activeRoom()
	now := time.Date(2025, 3, 14, 10, 0, 5, 0, time.UTC)

	if err := room.ApplyAnswer(1, true, now); err != nil {
		t.Fatal(err)
	}
	// The reader reads, the listener defines: the point goes to player B.
	if room.RightB != 1 || room.RightA != 0 {
		t.Fatalf("rights = A:%d B:%d, want the listener credited", room.RightA, room.RightB)
	}
	if room.IndexA != 1 {
		t.Fatalf("index A = %d, want 1", room.IndexA)
	}
	if room.CurrentTurn != 1 {
		t.Fatalf("turn = %d, a correct answer keeps the reader going", room.CurrentTurn)
	}
}

func TestApplyAnswerWrongSwitchesTurnAndBooksTime(t *testing.T) {
	room := activeRoom()
	now := time.Date(2025, 3, 14, 10, 0, 8, 0, time.UTC)

	if err := room.ApplyAnswer(1, false, now); err != nil {
		t.Fatal(err)
	}
	if room.WrongB != 1 {
		t.Fatalf("wrong B = %d, want the listener debited", room.WrongB)
	}
	if room.CurrentTurn != 2 {
		t.Fatalf("turn = %d, want handed to player B", room.CurrentTurn)
	}
	if room.ElapsedAMs != 8000 {
		t.Fatalf("elapsed A = %dms, want 8000", room.ElapsedAMs)
	}
	if room.TurnStartedAt == nil || !room.TurnStartedAt.Equal(now) {
		t.Fatalf("turn started = %v, want reset to now", room.TurnStartedAt)
	}
}

func TestFlawlessFinisherHandsTurnOver(t *testing.T) {
	room := activeRoom()
	room.IndexA = 1 // one word left
	now := time.Date(2025, 3, 14, 10, 1, 0, 0, time.UTC)

	if err := room.ApplyAnswer(1, true, now); err != nil {
		t.Fatal(err)
	}
	if room.Status != RoomActive {
		t.Fatalf("status = %s, a flawless early finish must not end the game", room.Status)
	}
	if room.CurrentTurn != 2 {
		t.Fatalf("turn = %d, want handed to the trailing player", room.CurrentTurn)
	}
}

func TestEarlyFinishWithMistakesSettlesImmediately(t *testing.T) {
	room := activeRoom()
	room.IndexA = 1
	room.WrongA = 1 // reader already failed a word as listener
	room.RightA = 1
	room.RightB = 1
	now := time.Date(2025, 3, 14, 10, 1, 0, 0, time.UTC)

	if err := room.ApplyAnswer(1, true, now); err != nil {
		t.Fatal(err)
	}
	if room.Status != RoomFinished {
		t.Fatalf("status = %s, want finished", room.Status)
	}
	// RightB became 2 with the final answer; B wins outright.
	if room.WinnerID == nil || *room.WinnerID != 2 {
		t.Fatalf("winner = %v, want 2", room.WinnerID)
	}
}

func TestEarlyFinishTieFavorsFinisher(t *testing.T) {
	room := activeRoom()
	room.IndexA = 1
	room.WrongA = 1
	room.RightA = 2
	room.RightB = 1
	now := time.Date(2025, 3, 14, 10, 1, 0, 0, time.UTC)

	if err := room.ApplyAnswer(1, true, now); err != nil {
		t.Fatal(err)
	}
	// Both sides end on 2 rights; the tie goes to the player who finished.
	if room.WinnerID == nil || *room.WinnerID != 1 {
		t.Fatalf("winner = %v, want the finisher", room.WinnerID)
	}
}

func TestMutualCompletionTieBreaksOnTime(t *testing.T) {
	room := activeRoom()
	room.IndexA = 1
	room.IndexB = 2 // player B already done
	room.RightA = 2
	room.RightB = 1
	room.WrongA = 1
	room.ElapsedAMs = 40000
	room.ElapsedBMs = 30000
	now := time.Date(2025, 3, 14, 10, 2, 0, 0, time.UTC)

	if err := room.ApplyAnswer(1, true, now); err != nil {
		t.Fatal(err)
	}
	if room.Status != RoomFinished {
		t.Fatalf("status = %s, want finished", room.Status)
	}
	// Rights tie at 2:2, so the lower cumulative time wins.
	if room.WinnerID == nil || *room.WinnerID != 2 {
		t.Fatalf("winner = %v, want faster player 2", room.WinnerID)
	}
}

func TestAbandonLeavesNoWinner(t *testing.T) {
	room := activeRoom()
	room.Abandon()
	if room.Status != RoomFinished {
		t.Fatalf("status = %s, want finished", room.Status)
	}
	if room.WinnerID != nil {
		t.Fatalf("winner = %v, want none", room.WinnerID)
	}
	if room.TurnStartedAt != nil {
		t.Fatal("turn clock must stop on abandon")
	}
}

func TestCurrentWordFollowsTurn(t *testing.T) {
	room := activeRoom()
	word, ok := room.CurrentWord()
	if !ok || word.WordID != 11 {
		t.Fatalf("current = %v/%v, want word 11", word.WordID, ok)
	}

	room.CurrentTurn = 2
	room.IndexB = 1
	word, ok = room.CurrentWord()
	if !ok || word.WordID != 22 {
		t.Fatalf("current = %v/%v, want word 22", word.WordID, ok)
	}

	room.IndexB = 2
	if _, ok := room.CurrentWord(); ok {
		t.Fatal("exhausted list must report no current word")
	}
}
