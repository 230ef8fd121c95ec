package app

import (
	"context"
	"strconv"
	"time"

	"github.com/elianna-2004/kahoot/internal/domain"

	"github.com/google/uuid"
)

// codeAttempts bounds the collision retry loop in CreateGame. With a 6-symbol
// code space a second attempt is already rare.
const codeAttempts = 5

// GameStore abstracts how active games are registered and looked up
// (in-memory, Redis-marked, etc). Codes are stored normalized and must be
// unique among active games; Put reports ErrCodeInUse on a collision.
type GameStore interface {
	Put(session *Session) error
	GetByID(id string) (*Session, bool)
	GetByCode(code string) (*Session, bool)
	// Retire frees the code for reuse but keeps the session reachable by id
	// for late queries. Safe to call repeatedly.
	Retire(id string)
	// Remove drops the session entirely.
	Remove(id string)
}

// QuestionSetRepository loads question set content (from cache/backing store).
type QuestionSetRepository interface {
	GetSet(ctx context.Context, setID string) (domain.QuestionSet, error)
}

// GameService owns game creation and routes inbound actions to the right
// session. Registry synchronization lives in the store; per-game
// serialization lives in the session.
type GameService struct {
	store      GameStore
	sets       QuestionSetRepository
	scorer     *Scorer
	codeLength int
	now        func() time.Time
}

func NewGameService(store GameStore, sets QuestionSetRepository, scorer *Scorer) *GameService {
	return &GameService{
		store:      store,
		sets:       sets,
		scorer:     scorer,
		codeLength: DefaultCodeLength,
		now:        time.Now,
	}
}

// SetCodeLength overrides the generated code length; values below one keep
// the default.
func (g *GameService) SetCodeLength(n int) {
	if n > 0 {
		g.codeLength = n
	}
}

// CreateGame registers a new game in the waiting phase. Questions may be
// supplied inline or by naming a stored question set; inline wins when both
// are present. The generated code is retried on collision.
func (g *GameService) CreateGame(ctx context.Context, questions []domain.Question, setID string) (gameID, gameCode string, err error) {
	if len(questions) == 0 && setID != "" {
		set, err := g.sets.GetSet(ctx, setID)
		if err != nil {
			return "", "", err
		}
		questions = set.Questions
	}
	if err := validateQuestions(questions); err != nil {
		return "", "", err
	}
	questions = withQuestionIDs(questions)

	id := "g-" + uuid.NewString()
	for i := 0; i < codeAttempts; i++ {
		code := NewGameCode(g.codeLength)
		session := NewSessionWithClock(id, code, questions, g.scorer, g.now)
		switch err := g.store.Put(session); err {
		case nil:
			return id, code, nil
		case domain.ErrCodeInUse:
			continue
		default:
			return "", "", err
		}
	}
	return "", "", domain.ErrCodeInUse
}

// Join admits a player into the game addressed by code. Unknown codes fail
// with ErrGameNotFound and leave no routing state behind.
func (g *GameService) Join(code, name string) (gameID string, player domain.Player, envs []Envelope, err error) {
	session, ok := g.store.GetByCode(NormalizeCode(code))
	if !ok {
		return "", domain.Player{}, nil, domain.ErrGameNotFound
	}
	player, envs, err = session.Join(name)
	if err != nil {
		return "", domain.Player{}, nil, err
	}
	return session.ID(), player, envs, nil
}

// Start begins the first question.
func (g *GameService) Start(gameID string) ([]Envelope, error) {
	session, err := g.session(gameID)
	if err != nil {
		return nil, err
	}
	return session.Start()
}

// Submit records a player's answer for the current question.
func (g *GameService) Submit(gameID, playerID, questionID string, answerIndex int) ([]Envelope, error) {
	session, err := g.session(gameID)
	if err != nil {
		return nil, err
	}
	return session.Submit(playerID, questionID, answerIndex)
}

// ShowLeaderboard reveals standings on host demand.
func (g *GameService) ShowLeaderboard(gameID string) ([]Envelope, error) {
	session, err := g.session(gameID)
	if err != nil {
		return nil, err
	}
	return session.ShowLeaderboard()
}

// Advance moves to the next question or finishes the game. A finished game
// has its code retired so it can be recycled.
func (g *GameService) Advance(gameID string) ([]Envelope, error) {
	session, err := g.session(gameID)
	if err != nil {
		return nil, err
	}
	envs, err := session.Advance()
	if err != nil {
		return nil, err
	}
	if session.Phase() == domain.PhaseFinished {
		g.store.Retire(gameID)
	}
	return envs, nil
}

// Disconnect clears a player's connection reference.
func (g *GameService) Disconnect(gameID, playerID string) []Envelope {
	session, err := g.session(gameID)
	if err != nil {
		return nil
	}
	return session.Disconnect(playerID)
}

// End aborts the game and retires its code.
func (g *GameService) End(gameID string) ([]Envelope, error) {
	session, err := g.session(gameID)
	if err != nil {
		return nil, err
	}
	envs := session.End()
	g.store.Retire(gameID)
	return envs, nil
}

// Reap drops a finished game once the transport has no more use for it.
func (g *GameService) Reap(gameID string) {
	session, ok := g.store.GetByID(gameID)
	if !ok {
		return
	}
	if session.Phase() == domain.PhaseFinished {
		g.store.Remove(gameID)
	}
}

func (g *GameService) session(gameID string) (*Session, error) {
	session, ok := g.store.GetByID(gameID)
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return session, nil
}

// withQuestionIDs fills in ids for questions submitted without one, copying
// the slice so the caller's input stays untouched.
func withQuestionIDs(questions []domain.Question) []domain.Question {
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = "q" + strconv.Itoa(i+1)
		}
	}
	return out
}

func validateQuestions(questions []domain.Question) error {
	if len(questions) == 0 {
		return domain.ErrNoQuestions
	}
	for _, q := range questions {
		if len(q.Answers) < 2 {
			return domain.ErrInvalidQuestion
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Answers) {
			return domain.ErrInvalidQuestion
		}
	}
	return nil
}
