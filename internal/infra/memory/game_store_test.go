package memory

import (
	"testing"

	"github.com/elianna-2004/kahoot/internal/app"
	"github.com/elianna-2004/kahoot/internal/domain"
)

func testSession(id, code string) *app.Session {
	questions := []domain.Question{
		{ID: "q1", Prompt: "?", Answers: []string{"a", "b"}, CorrectIndex: 0},
	}
	return app.NewSession(id, code, questions, app.NewScorer(app.DefaultScoringConfig()))
}

func TestGameStoreLifecycle(t *testing.T) {
	store := NewGameStore()

	if err := store.Put(testSession("g-1", "AAAAAA")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(testSession("g-2", "AAAAAA")); err != domain.ErrCodeInUse {
		t.Fatalf("expected ErrCodeInUse, got %v", err)
	}

	if _, ok := store.GetByID("g-1"); !ok {
		t.Fatalf("expected session by id")
	}
	if _, ok := store.GetByCode("AAAAAA"); !ok {
		t.Fatalf("expected session by code")
	}

	store.Retire("g-1")
	store.Retire("g-1") // idempotent
	if _, ok := store.GetByCode("AAAAAA"); ok {
		t.Fatalf("expected code freed after retire")
	}
	if _, ok := store.GetByID("g-1"); !ok {
		t.Fatalf("expected session retained after retire")
	}

	// The freed code can be taken by a new game without disturbing the old one.
	if err := store.Put(testSession("g-3", "AAAAAA")); err != nil {
		t.Fatalf("reuse freed code: %v", err)
	}

	store.Remove("g-1")
	if _, ok := store.GetByID("g-1"); ok {
		t.Fatalf("expected session gone after remove")
	}
	if _, ok := store.GetByCode("AAAAAA"); !ok {
		t.Fatalf("remove of g-1 must not free g-3's code")
	}
}
