package app

import "time"

// ScoringConfig exposes the tuning knobs of the scoring formula so they live
// in configuration rather than buried in the decay logic.
type ScoringConfig struct {
	// BasePoints is awarded for a correct answer at zero elapsed time.
	BasePoints int
	// FloorPoints is the minimum award for a correct answer, however slow.
	FloorPoints int
	// QuestionTime is the latency budget; the award decays linearly from
	// BasePoints to FloorPoints across this window.
	QuestionTime time.Duration
}

// DefaultScoringConfig mirrors the classic quiz tuning: 1000 points, halving
// over a 30 second window.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BasePoints:   1000,
		FloorPoints:  500,
		QuestionTime: 30 * time.Second,
	}
}

// Scorer computes the points for an answer. It is a pure function of its
// inputs: total, deterministic, and monotone non-increasing in elapsed time.
type Scorer struct {
	cfg ScoringConfig
}

func NewScorer(cfg ScoringConfig) *Scorer {
	if cfg.BasePoints <= 0 {
		cfg = DefaultScoringConfig()
	}
	if cfg.FloorPoints < 0 {
		cfg.FloorPoints = 0
	}
	if cfg.FloorPoints > cfg.BasePoints {
		cfg.FloorPoints = cfg.BasePoints
	}
	if cfg.QuestionTime <= 0 {
		cfg.QuestionTime = DefaultScoringConfig().QuestionTime
	}
	return &Scorer{cfg: cfg}
}

// Score returns 0 for an incorrect answer; for a correct one it scales the
// base award down linearly with elapsed time, never below the floor.
func (s *Scorer) Score(correct bool, elapsed time.Duration) int {
	if !correct {
		return 0
	}
	if elapsed <= 0 {
		return s.cfg.BasePoints
	}
	if elapsed >= s.cfg.QuestionTime {
		return s.cfg.FloorPoints
	}
	span := int64(s.cfg.BasePoints - s.cfg.FloorPoints)
	decay := span * int64(elapsed) / int64(s.cfg.QuestionTime)
	return s.cfg.BasePoints - int(decay)
}

// Config returns the active tuning, mainly so tests can assert properties
// against the configured bounds.
func (s *Scorer) Config() ScoringConfig {
	return s.cfg
}
