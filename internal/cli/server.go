package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elianna-2004/kahoot/internal/app"
	"github.com/elianna-2004/kahoot/internal/config"
	"github.com/elianna-2004/kahoot/internal/domain"
	"github.com/elianna-2004/kahoot/internal/infra/memory"
	pgloader "github.com/elianna-2004/kahoot/internal/infra/postgres"
	redisinfra "github.com/elianna-2004/kahoot/internal/infra/redis"
	transport "github.com/elianna-2004/kahoot/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 4*time.Hour)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.SetLoader = memory.NewStaticSetLoader(sampleQuestionSets())
	if pool != nil {
		loader = pgloader.NewSetLoader(pool)
	}

	setTTL := config.TTLDuration(cfg.Game.SetTTL, 10*time.Minute)
	var sets app.QuestionSetRepository
	if redisClient != nil {
		sets = redisinfra.NewQuestionSetRepository(redisClient, loader, setTTL)
	} else {
		sets = memory.NewQuestionSetRepository(loader, setTTL)
	}

	var store app.GameStore
	if redisClient != nil {
		store = redisinfra.NewGameStore(redisClient, redisTTL)
	} else {
		store = memory.NewGameStore()
	}

	scorer := app.NewScorer(app.ScoringConfig{
		BasePoints:   cfg.Game.BasePoints,
		FloorPoints:  cfg.Game.FloorPoints,
		QuestionTime: config.TTLDuration(cfg.Game.QuestionTime, 30*time.Second),
	})
	service := app.NewGameService(store, sets, scorer)
	service.SetCodeLength(cfg.Game.CodeLength)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout stays unset: websocket connections outlive any
		// sensible HTTP write deadline.
	}

	go func() {
		log.Printf("starting quiz game server on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuestionSets is the built-in quiz hosts get without a database; swap
// in the Postgres loader for curated content.
func sampleQuestionSets() map[string]domain.QuestionSet {
	return map[string]domain.QuestionSet{
		"sample": {
			ID: "sample",
			Questions: []domain.Question{
				{ID: "q1", Prompt: "What is 2 + 2?", Answers: []string{"3", "4", "5", "6"}, CorrectIndex: 1},
				{ID: "q2", Prompt: "Which planet is known as the Red Planet?", Answers: []string{"Venus", "Mars", "Jupiter", "Saturn"}, CorrectIndex: 1},
				{ID: "q3", Prompt: "What is the capital of France?", Answers: []string{"Berlin", "Madrid", "Paris", "Rome"}, CorrectIndex: 2},
				{ID: "q4", Prompt: "How many continents are there?", Answers: []string{"5", "6", "7", "8"}, CorrectIndex: 2},
				{ID: "q5", Prompt: "What year did the first moon landing occur?", Answers: []string{"1967", "1969", "1971", "1973"}, CorrectIndex: 1},
			},
		},
	}
}
