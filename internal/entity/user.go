package entity

import "time"

// User represents a learner known to the trainer.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStats aggregates a learner's progress across their vocabulary.
type UserStats struct {
	TotalWords    int   `json:"total_words"`
	DueWords      int   `json:"due_words"`
	MasteredWords int   `json:"mastered_words"`
	TotalRight    int64 `json:"total_right"`
	TotalWrong    int64 `json:"total_wrong"`
}
