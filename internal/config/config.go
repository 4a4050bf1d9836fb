package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// SessionStore selects the session store backend: "memory" or "postgres".
	SessionStore string

	MoviesCSV string

	TotalQuestions int
	BasePoints     int
	TimeBonus      int
	MinDifficulty  int
	MaxDifficulty  int
	RaiseStreak    int
	DropStreak     int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Port: envOr("PORT", "8080"),

		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "trivia_user"),
		DBPassword: envOr("DB_PASSWORD", "trivia_password"),
		DBName:     envOr("DB_NAME", "reel_trivia"),
		DBSSLMode:  envOr("DB_SSLMODE", "disable"),

		SessionStore: envOr("SESSION_STORE", "memory"),

		MoviesCSV: envOr("MOVIES_CSV", ""),

		TotalQuestions: envIntOr("QUIZ_TOTAL_QUESTIONS", 10),
		BasePoints:     envIntOr("QUIZ_BASE_POINTS", 100),
		TimeBonus:      envIntOr("QUIZ_TIME_BONUS", 5),
		MinDifficulty:  envIntOr("QUIZ_MIN_DIFFICULTY", 1),
		MaxDifficulty:  envIntOr("QUIZ_MAX_DIFFICULTY", 3),
		RaiseStreak:    envIntOr("QUIZ_RAISE_STREAK", 2),
		DropStreak:     envIntOr("QUIZ_DROP_STREAK", 2),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
