package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnpath-service/internal/app"
	"learnpath-service/internal/config"
	"learnpath-service/internal/domain"
	"learnpath-service/internal/infra/memory"
	pgstore "learnpath-service/internal/infra/postgres"
	redisstore "learnpath-service/internal/infra/redis"
	transport "learnpath-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the course service",
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
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.CourseLoader = memory.NewStaticCourseLoader(sampleCourses())
	if pool != nil {
		loader = pgstore.NewCourseLoader(pool)
	}

	courseTTL := config.TTLDuration(cfg.Course.TTL, 10*time.Minute)
	var courses app.CourseRepository
	if redisClient != nil {
		courses = redisstore.NewCourseRepository(redisClient, loader, courseTTL)
	} else {
		courses = memory.NewCourseRepository(loader, courseTTL)
	}

	var attempts app.AttemptRepository
	if redisClient != nil {
		attempts = redisstore.NewAttemptStore(redisClient, redisTTL)
	} else {
		attempts = memory.NewAttemptStore()
	}

	var completions app.CompletionStore = memory.NewCompletionStore()
	if pool != nil {
		completions = pgstore.NewCompletionStore(pool)
	}

	service := app.NewCourseService(courses, completions, attempts)
	wsHandler := transport.NewWSHandler(service)
	navHandler := transport.NewNavHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/quiz", wsHandler.ServeWS)
	navHandler.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting course service on :%s", finalPort)
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

// sampleCourses provides a minimal course tree; swap this loader with the
// Postgres-backed one in production.
func sampleCourses() map[string]domain.Course {
	return map[string]domain.Course{
		"course-1": {
			ID:    "course-1",
			Title: "Personal Finance Basics",
			Modules: []domain.Module{
				{
					ID:    "m1",
					Title: "Budgeting",
					Order: 1,
					Lessons: []domain.Lesson{
						{
							ID:    "l1",
							Title: "Income and Expenses",
							Order: 1,
							Activities: []domain.Activity{
								{ID: "a1", Title: "Why budget?", Order: 1, Kind: domain.KindArticle},
								{
									ID:    "a2",
									Title: "Budgeting check",
									Order: 2,
									Kind:  domain.KindQuiz,
									Questions: []domain.Question{
										{
											ID:      "q1",
											Variant: domain.VariantRadio,
											Prompt:  "What is 2 + 2?",
											Options: []domain.Option{
												{ID: "o1", Text: "3", Correct: false},
												{ID: "o2", Text: "4", Correct: true},
												{ID: "o3", Text: "5", Correct: false},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}
