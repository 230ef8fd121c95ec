package domain

import "errors"

var (
	// ErrGameNotFound is returned when no active game matches a code or id.
	ErrGameNotFound = errors.New("game not found")
	// ErrSetNotFound indicates the question set could not be loaded.
	ErrSetNotFound = errors.New("question set not found")
	// ErrPlayerNotFound is returned when a player id is unknown to the game.
	ErrPlayerNotFound = errors.New("player not found in game")
	// ErrInvalidPhase rejects an action that is not valid in the game's current phase.
	ErrInvalidPhase = errors.New("action not valid in current phase")
	// ErrNoPlayers rejects starting a game before anyone has joined.
	ErrNoPlayers = errors.New("game has no players")
	// ErrNoQuestions rejects creating a game from an empty question list.
	ErrNoQuestions = errors.New("question list is empty")
	// ErrInvalidQuestion rejects a question with fewer than two answers or a
	// correct index outside its answer list.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrAlreadyAnswered rejects a second submission for the same question.
	ErrAlreadyAnswered = errors.New("answer already submitted")
	// ErrStaleQuestion rejects a submission referencing a question that is no
	// longer current; unlike ErrAlreadyAnswered it implies client/server desync.
	ErrStaleQuestion = errors.New("submission references a stale question")
	// ErrInvalidAnswer rejects an answer index outside the question's options.
	ErrInvalidAnswer = errors.New("answer index out of range")
	// ErrCodeInUse is returned by game stores on a code collision; creation retries.
	ErrCodeInUse = errors.New("game code already in use")
)
