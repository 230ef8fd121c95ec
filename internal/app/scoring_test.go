package app

import (
	"testing"
	"time"
)

func TestScoreIncorrectIsAlwaysZero(t *testing.T) {
	scorer := NewScorer(DefaultScoringConfig())
	for _, elapsed := range []time.Duration{0, time.Second, time.Minute, -time.Second} {
		if got := scorer.Score(false, elapsed); got != 0 {
			t.Fatalf("incorrect answer at %v scored %d, want 0", elapsed, got)
		}
	}
}

func TestScoreBoundsAndFloor(t *testing.T) {
	cfg := ScoringConfig{BasePoints: 1000, FloorPoints: 500, QuestionTime: 30 * time.Second}
	scorer := NewScorer(cfg)

	if got := scorer.Score(true, 0); got != cfg.BasePoints {
		t.Fatalf("instant answer scored %d, want %d", got, cfg.BasePoints)
	}
	if got := scorer.Score(true, cfg.QuestionTime); got != cfg.FloorPoints {
		t.Fatalf("budget-exhausted answer scored %d, want floor %d", got, cfg.FloorPoints)
	}
	if got := scorer.Score(true, time.Hour); got != cfg.FloorPoints {
		t.Fatalf("late answer scored %d, want floor %d", got, cfg.FloorPoints)
	}
	if got := scorer.Score(true, 15*time.Second); got != 750 {
		t.Fatalf("halfway answer scored %d, want 750", got)
	}
}

func TestScoreMonotoneNonIncreasing(t *testing.T) {
	scorer := NewScorer(ScoringConfig{BasePoints: 900, FloorPoints: 100, QuestionTime: 20 * time.Second})

	prev := scorer.Score(true, 0)
	for elapsed := time.Duration(0); elapsed <= 25*time.Second; elapsed += 250 * time.Millisecond {
		got := scorer.Score(true, elapsed)
		if got > prev {
			t.Fatalf("score increased from %d to %d at elapsed %v", prev, got, elapsed)
		}
		prev = got
	}
}

func TestScorerClampsBrokenConfig(t *testing.T) {
	scorer := NewScorer(ScoringConfig{BasePoints: 100, FloorPoints: 500, QuestionTime: time.Second})
	if cfg := scorer.Config(); cfg.FloorPoints > cfg.BasePoints {
		t.Fatalf("floor %d above base %d", cfg.FloorPoints, cfg.BasePoints)
	}
	scorer = NewScorer(ScoringConfig{})
	if cfg := scorer.Config(); cfg.BasePoints <= 0 || cfg.QuestionTime <= 0 {
		t.Fatalf("zero config not defaulted: %+v", cfg)
	}
}
