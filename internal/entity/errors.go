package entity

import "errors"

// Domain errors for words, rooms and practice sessions.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrWordNotFound    = errors.New("word not found")
	ErrInvalidWordText = errors.New("invalid word text")
	ErrSessionNotFound = errors.New("practice session not found")

	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomFull          = errors.New("room is full")
	ErrRoomUnavailable   = errors.New("room is not accepting players")
	ErrSelfJoin          = errors.New("cannot join your own room as opponent")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrNotHost           = errors.New("only the host may start the game")
	ErrRoomCodeTaken     = errors.New("room code already taken")
	ErrCreationExhausted = errors.New("could not allocate a unique room code")

	ErrInsufficientWords  = errors.New("not enough words available")
	ErrPersistenceFailure = errors.New("persistence failure")
)
