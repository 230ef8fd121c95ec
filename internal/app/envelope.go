package app

import "github.com/elianna-2004/kahoot/internal/domain"

// Scope addresses an outbound event to a subset of a game's connections.
type Scope int

const (
	// ScopeAll targets the host and every player of the game.
	ScopeAll Scope = iota
	// ScopeHost targets only the host connection.
	ScopeHost
	// ScopePlayers targets every player connection, excluding the host.
	ScopePlayers
	// ScopePlayer targets the single player named by Envelope.PlayerID.
	ScopePlayer
)

// Event names shared with the client protocol.
const (
	EventGameCreated       = "game-created"
	EventJoinedGame        = "joined-game"
	EventJoinError         = "join-error"
	EventPlayerJoined      = "player-joined"
	EventGameStarted       = "game-started"
	EventAnswerReceived    = "answer-received"
	EventAllAnswered       = "all-answered"
	EventLeaderboardUpdate = "leaderboard-update"
	EventNextQuestion      = "next-question"
	EventGameFinished      = "game-finished"
	EventGameEnded         = "game-ended"
	EventPlayerLeft        = "player-left"
)

// Envelope is one addressed outbound event produced by a session mutation.
// Envelopes emitted for the same action must reach each recipient in
// emission order; the gateway must not reorder or rewrite them.
type Envelope struct {
	Scope    Scope
	PlayerID string // set when Scope == ScopePlayer
	Event    string
	Payload  any
}

// QuestionView is the question shape sent over the wire. The correct index is
// only populated on host-bound frames.
type QuestionView struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"text"`
	Answers       []string `json:"answers"`
	CorrectAnswer *int     `json:"correctAnswer,omitempty"`
}

// QuestionPayload frames game-started and next-question events.
type QuestionPayload struct {
	Question       QuestionView `json:"question"`
	QuestionNumber int          `json:"questionNumber"`
	TotalQuestions int          `json:"totalQuestions"`
}

// AnswerReceivedPayload is the private result sent back to a submitter.
type AnswerReceivedPayload struct {
	IsCorrect bool `json:"isCorrect"`
}

// LeaderboardPayload frames all-answered, leaderboard-update and game-finished.
type LeaderboardPayload struct {
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
}

// PlayerJoinedPayload notifies the host of a new roster entry.
type PlayerJoinedPayload struct {
	Player domain.Player `json:"player"`
}

// PlayerLeftPayload notifies the host that a player's connection dropped.
type PlayerLeftPayload struct {
	PlayerID string `json:"playerId"`
}

func hostQuestionView(q domain.Question) QuestionView {
	correct := q.CorrectIndex
	return QuestionView{
		ID:            q.ID,
		Prompt:        q.Prompt,
		Answers:       q.Answers,
		CorrectAnswer: &correct,
	}
}

// playerQuestionView strips the correct index so players cannot read the
// answer out of the frame.
func playerQuestionView(q domain.Question) QuestionView {
	return QuestionView{
		ID:      q.ID,
		Prompt:  q.Prompt,
		Answers: q.Answers,
	}
}
