package app

import (
	"strings"
	"sync"
	"time"

	"github.com/elianna-2004/kahoot/internal/domain"

	"github.com/google/uuid"
)

const (
	defaultPlayerName = "Player"
	maxPlayerNameLen  = 24
)

// sessionPlayer is the engine-internal participant state. The connection
// itself lives in the transport layer; the session only tracks whether one
// is currently attached.
type sessionPlayer struct {
	id        string
	name      string
	score     int
	joinOrder int
	connected bool
	answer    *domain.AnswerRecord
}

// Session is the authoritative state machine for one game. Every mutation
// runs under the session mutex, so concurrent actions for the same game are
// applied in a total order while distinct games proceed in parallel.
// Mutations return the addressed events they produced; the session never
// blocks on delivery.
type Session struct {
	id        string
	code      string
	questions []domain.Question
	scorer    *Scorer
	now       func() time.Time

	mu            sync.Mutex
	phase         domain.Phase
	current       int
	questionStart time.Time
	players       map[string]*sessionPlayer
	joined        int
}

// NewSession builds a session in the waiting phase with no players.
func NewSession(id, code string, questions []domain.Question, scorer *Scorer) *Session {
	return NewSessionWithClock(id, code, questions, scorer, time.Now)
}

// NewSessionWithClock injects the clock for deterministic timestamps in tests.
func NewSessionWithClock(id, code string, questions []domain.Question, scorer *Scorer, now func() time.Time) *Session {
	return &Session{
		id:        id,
		code:      code,
		questions: questions,
		scorer:    scorer,
		now:       now,
		phase:     domain.PhaseWaiting,
		players:   make(map[string]*sessionPlayer),
	}
}

func (s *Session) ID() string   { return s.id }
func (s *Session) Code() string { return s.code }

// Phase reports the current lifecycle state.
func (s *Session) Phase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Join admits a player while the game is waiting. The name is trimmed,
// length-bounded and defaulted; the returned player carries the server-
// assigned id the client must use for submissions.
func (s *Session) Join(name string) (domain.Player, []Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseWaiting {
		return domain.Player{}, nil, domain.ErrInvalidPhase
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultPlayerName
	}
	if runes := []rune(name); len(runes) > maxPlayerNameLen {
		name = string(runes[:maxPlayerNameLen])
	}

	p := &sessionPlayer{
		id:        "p-" + uuid.NewString(),
		name:      name,
		joinOrder: s.joined,
		connected: true,
	}
	s.joined++
	s.players[p.id] = p

	player := domain.Player{ID: p.id, Name: p.name}
	envs := []Envelope{{
		Scope:   ScopeHost,
		Event:   EventPlayerJoined,
		Payload: PlayerJoinedPayload{Player: player},
	}}
	return player, envs, nil
}

// Start moves the game to its first question. It requires at least one
// joined player.
func (s *Session) Start() ([]Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseWaiting {
		return nil, domain.ErrInvalidPhase
	}
	if len(s.players) == 0 {
		return nil, domain.ErrNoPlayers
	}

	s.current = 0
	s.phase = domain.PhaseInQuestion
	s.questionStart = s.now()
	return s.questionEnvelopesLocked(EventGameStarted), nil
}

// Submit records a player's answer to the current question. The first
// accepted submission per (player, question) wins; later ones are rejected
// without touching state. When the last outstanding player answers, the
// session auto-transitions to reviewing and appends the all-answered
// broadcast under the same lock, so exactly one such broadcast can exist
// per question regardless of how submissions race.
func (s *Session) Submit(playerID, questionID string, answerIndex int) ([]Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseInQuestion {
		return nil, domain.ErrInvalidPhase
	}
	p, ok := s.players[playerID]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}

	q := s.questions[s.current]
	if questionID != q.ID {
		return nil, domain.ErrStaleQuestion
	}
	if answerIndex < 0 || answerIndex >= len(q.Answers) {
		return nil, domain.ErrInvalidAnswer
	}
	if p.answer != nil {
		return nil, domain.ErrAlreadyAnswered
	}

	now := s.now()
	correct := answerIndex == q.CorrectIndex
	points := s.scorer.Score(correct, now.Sub(s.questionStart))
	p.answer = &domain.AnswerRecord{
		AnswerIndex: answerIndex,
		SubmittedAt: now,
		Correct:     correct,
		Points:      points,
	}
	p.score += points

	envs := []Envelope{{
		Scope:    ScopePlayer,
		PlayerID: playerID,
		Event:    EventAnswerReceived,
		Payload:  AnswerReceivedPayload{IsCorrect: correct},
	}}

	if s.allAnsweredLocked() {
		s.phase = domain.PhaseReviewing
		envs = append(envs, Envelope{
			Scope:   ScopeAll,
			Event:   EventAllAnswered,
			Payload: LeaderboardPayload{Leaderboard: buildLeaderboard(s.players)},
		})
	}
	return envs, nil
}

// ShowLeaderboard reveals the current standings, moving to reviewing if the
// question was still open. Repeated calls are harmless.
func (s *Session) ShowLeaderboard() ([]Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseInQuestion && s.phase != domain.PhaseReviewing {
		return nil, domain.ErrInvalidPhase
	}

	s.phase = domain.PhaseReviewing
	return []Envelope{{
		Scope:   ScopeAll,
		Event:   EventLeaderboardUpdate,
		Payload: LeaderboardPayload{Leaderboard: buildLeaderboard(s.players)},
	}}, nil
}

// Advance moves to the next question, or finishes the game when none remain.
// Advancing from in_question is allowed so the host can skip a slow room.
// Advancing a finished game fails with ErrInvalidPhase and emits nothing, so
// game-finished fires exactly once.
func (s *Session) Advance() ([]Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseInQuestion && s.phase != domain.PhaseReviewing {
		return nil, domain.ErrInvalidPhase
	}

	if s.current+1 < len(s.questions) {
		s.current++
		s.phase = domain.PhaseInQuestion
		s.questionStart = s.now()
		for _, p := range s.players {
			p.answer = nil
		}
		return s.questionEnvelopesLocked(EventNextQuestion), nil
	}

	s.phase = domain.PhaseFinished
	return []Envelope{{
		Scope:   ScopeAll,
		Event:   EventGameFinished,
		Payload: LeaderboardPayload{Leaderboard: buildLeaderboard(s.players)},
	}}, nil
}

// Disconnect clears the player's connection flag but keeps score and answer
// records, leaving room for reconnection semantics at the transport layer.
// Unknown players are a no-op.
func (s *Session) Disconnect(playerID string) []Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[playerID]
	if !ok || s.phase == domain.PhaseFinished {
		return nil
	}
	p.connected = false
	return []Envelope{{
		Scope:   ScopeHost,
		Event:   EventPlayerLeft,
		Payload: PlayerLeftPayload{PlayerID: playerID},
	}}
}

// End aborts the game from any non-finished state.
func (s *Session) End() []Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == domain.PhaseFinished {
		return nil
	}
	s.phase = domain.PhaseFinished
	return []Envelope{{
		Scope:   ScopeAll,
		Event:   EventGameEnded,
		Payload: struct{}{},
	}}
}

// Players returns a snapshot of the roster in join order.
func (s *Session) Players() []domain.Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Player, 0, len(s.players))
	for _, e := range buildLeaderboard(s.players) {
		out = append(out, domain.Player{ID: e.ID, Name: e.Name, Score: e.Score})
	}
	return out
}

// questionEnvelopesLocked frames the current question for broadcast: the
// host frame carries the correct index, the player frame does not.
func (s *Session) questionEnvelopesLocked(event string) []Envelope {
	q := s.questions[s.current]
	number := s.current + 1
	total := len(s.questions)
	return []Envelope{
		{
			Scope: ScopeHost,
			Event: event,
			Payload: QuestionPayload{
				Question:       hostQuestionView(q),
				QuestionNumber: number,
				TotalQuestions: total,
			},
		},
		{
			Scope: ScopePlayers,
			Event: event,
			Payload: QuestionPayload{
				Question:       playerQuestionView(q),
				QuestionNumber: number,
				TotalQuestions: total,
			},
		},
	}
}

// allAnsweredLocked reports whether every joined player holds an answer
// record for the current question. Disconnected players still count: their
// score survives, so the question should not auto-reveal past them only
// because their socket dropped mid-question.
func (s *Session) allAnsweredLocked() bool {
	for _, p := range s.players {
		if p.answer == nil {
			return false
		}
	}
	return len(s.players) > 0
}
