package redis

import (
	"testing"
	"time"

	"github.com/elianna-2004/kahoot/internal/app"
	"github.com/elianna-2004/kahoot/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testSession(id, code string) *app.Session {
	questions := []domain.Question{
		{ID: "q1", Prompt: "?", Answers: []string{"a", "b"}, CorrectIndex: 0},
	}
	return app.NewSession(id, code, questions, app.NewScorer(app.DefaultScoringConfig()))
}

func TestGameStoreSetsAndClearsCodeKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewGameStore(client, time.Minute)

	if err := store.Put(testSession("g-1", "AB2X9Z")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !mr.Exists("game:code:AB2X9Z") {
		t.Fatalf("expected code reservation key to be set")
	}
	if err := store.Put(testSession("g-2", "AB2X9Z")); err != domain.ErrCodeInUse {
		t.Fatalf("expected ErrCodeInUse, got %v", err)
	}

	store.Retire("g-1")
	if mr.Exists("game:code:AB2X9Z") {
		t.Fatalf("expected code reservation key to be removed")
	}
	if _, ok := store.GetByID("g-1"); !ok {
		t.Fatalf("expected session retained after retire")
	}

	store.Remove("g-1")
	if _, ok := store.GetByID("g-1"); ok {
		t.Fatalf("expected session removed")
	}
}
