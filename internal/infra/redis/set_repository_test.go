package redis

import (
	"context"
	"testing"
	"time"

	"github.com/elianna-2004/kahoot/internal/domain"
	"github.com/elianna-2004/kahoot/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestQuestionSetRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	loader := &countingLoader{
		SetLoader: memory.NewStaticSetLoader(map[string]domain.QuestionSet{
			"sample": sampleSet(),
		}),
	}
	repo := NewQuestionSetRepository(client, loader, time.Minute)

	set, err := repo.GetSet(context.Background(), "sample")
	if err != nil {
		t.Fatalf("get set: %v", err)
	}
	if len(set.Questions) != 1 || set.Questions[0].CorrectIndex != 1 {
		t.Fatalf("unexpected set content: %+v", set)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("quiz:set:sample") {
		t.Fatalf("expected cached set key")
	}

	// Second call should hit the redis cache.
	if _, err := repo.GetSet(context.Background(), "sample"); err != nil {
		t.Fatalf("get set 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
}

type countingLoader struct {
	memory.SetLoader
	calls int
}

func (l *countingLoader) LoadSet(ctx context.Context, setID string) (domain.QuestionSet, error) {
	l.calls++
	return l.SetLoader.LoadSet(ctx, setID)
}

func sampleSet() domain.QuestionSet {
	return domain.QuestionSet{
		ID: "sample",
		Questions: []domain.Question{
			{
				ID:           "q1",
				Prompt:       "What is 2 + 2?",
				Answers:      []string{"3", "4", "5", "6"},
				CorrectIndex: 1,
			},
		},
	}
}
