package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/reel-trivia/backend/internal/auth"
	"github.com/reel-trivia/backend/internal/config"
	"github.com/reel-trivia/backend/internal/database"
	"github.com/reel-trivia/backend/internal/generator"
	"github.com/reel-trivia/backend/internal/middleware"
	"github.com/reel-trivia/backend/internal/movies"
	"github.com/reel-trivia/backend/internal/quiz"
	"github.com/reel-trivia/backend/internal/scores"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	movieStore := movies.NewStore(db)
	if cfg.MoviesCSV != "" {
		if err := movies.SeedFromCSV(context.Background(), movieStore, cfg.MoviesCSV); err != nil {
			log.Fatalf("Failed to seed movie catalog: %v", err)
		}
	}

	// Session store backend: in-memory for single-instance deployments,
	// postgres when sessions must survive restarts.
	var sessionStore quiz.SessionStore
	switch cfg.SessionStore {
	case "postgres":
		sessionStore = quiz.NewPostgresStore(db)
		log.Println("Using postgres session store")
	default:
		sessionStore = quiz.NewMemoryStore()
		log.Println("Using in-memory session store")
	}

	source := generator.NewSource(movieStore, generator.NewGenerator())

	engine := quiz.NewEngine(sessionStore, source, quiz.Config{
		DefaultTotalQuestions: cfg.TotalQuestions,
		BasePoints:            cfg.BasePoints,
		TimeBonus:             cfg.TimeBonus,
		MinDifficulty:         cfg.MinDifficulty,
		MaxDifficulty:         cfg.MaxDifficulty,
		RaiseStreak:           cfg.RaiseStreak,
		DropStreak:            cfg.DropStreak,
	})

	authHandler := auth.NewHandler(db)
	engine.SetGenreLookup(func(ctx context.Context, userID int64) (string, error) {
		return authHandler.PreferredGenre(userID)
	})

	resultStore := scores.NewStore(db)
	scoreService := scores.NewService(resultStore, engine)
	quizHandler := quiz.NewHandler(engine, scoreService)
	scoresHandler := scores.NewHandler(resultStore)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/leaderboard", scoresHandler.GetLeaderboard).Methods("GET")
	api.HandleFunc("/profile/{user_id:[0-9]+}", scoresHandler.GetProfile).Methods("GET")

	// Quiz routes work for both anonymous and authenticated players.
	quizRoutes := api.PathPrefix("/quiz").Subrouter()
	quizRoutes.Use(middleware.OptionalAuth)
	quizRoutes.HandleFunc("/start", quizHandler.Start).Methods("POST")
	quizRoutes.HandleFunc("/answer", quizHandler.SubmitAnswer).Methods("POST")
	quizRoutes.HandleFunc("/complete", quizHandler.Complete).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/profile/genre", authHandler.SetGenre).Methods("PUT")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
