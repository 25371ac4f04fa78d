package models

import "time"

// OwnedQuiz belongs to exactly one account.
type OwnedQuiz struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Question is a leaf entity under an OwnedQuiz.
type Question struct {
	ID     int64  `json:"id"`
	QuizID int64  `json:"quiz_id"`
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// QuizResult records an account's participation in some quiz. It hangs
// off the participant account, not off quiz ownership.
type QuizResult struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Score     int       `json:"score"`
	TakenAt   time.Time `json:"taken_at"`
}

// Challenge references two accounts by role. It must go away when
// either side is deleted.
type Challenge struct {
	ID           int64     `json:"id"`
	ChallengerID int64     `json:"challenger_id"`
	OpponentID   int64     `json:"opponent_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
