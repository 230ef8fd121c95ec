package domain

import "time"

// Phase is the lifecycle state of a game session.
type Phase string

const (
	PhaseWaiting    Phase = "waiting"
	PhaseInQuestion Phase = "in_question"
	PhaseReviewing  Phase = "reviewing"
	PhaseFinished   Phase = "finished"
)

// Question is one multiple-choice question. Immutable once a game starts.
type Question struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"text"`
	Answers      []string `json:"answers"`
	CorrectIndex int      `json:"correctAnswer"`
}

// QuestionSet is a named, ordered list of questions a game can be created from.
type QuestionSet struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// Player is the externally visible view of a game participant.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// AnswerRecord captures a player's accepted response to the current question.
// At most one record exists per (player, question); the first submission wins.
type AnswerRecord struct {
	AnswerIndex int
	SubmittedAt time.Time
	Correct     bool
	Points      int
}

// LeaderboardEntry is one row of a game's descending-score ranking.
type LeaderboardEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}
