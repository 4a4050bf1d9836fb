package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/reel-trivia/backend/internal/config"
)

func Connect(cfg config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		preferred_genre VARCHAR(50),
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS movies (
		id          BIGSERIAL PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		year        VARCHAR(10),
		genre       VARCHAR(255),
		director    VARCHAR(255),
		actors      TEXT[],
		plot        TEXT,
		rating      VARCHAR(10),
		metascore   VARCHAR(10),
		certificate VARCHAR(20),
		runtime     VARCHAR(20),
		rank        INT NOT NULL DEFAULT 0,
		created_at  TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_movies_genre ON movies(genre);
	CREATE INDEX IF NOT EXISTS idx_movies_rank ON movies(rank);

	CREATE TABLE IF NOT EXISTS quiz_sessions (
		id               VARCHAR(36) PRIMARY KEY,
		user_id          BIGINT REFERENCES users(id) ON DELETE SET NULL,
		questions        JSONB NOT NULL,
		current_index    INT NOT NULL DEFAULT 0,
		score            INT NOT NULL DEFAULT 0,
		difficulty_level INT NOT NULL DEFAULT 1,
		correct_run      INT NOT NULL DEFAULT 0,
		incorrect_run    INT NOT NULL DEFAULT 0,
		answers          JSONB NOT NULL DEFAULT '[]',
		status           VARCHAR(20) NOT NULL DEFAULT 'active',
		version          BIGINT NOT NULL DEFAULT 1,
		created_at       TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_user ON quiz_sessions(user_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_status ON quiz_sessions(status);

	CREATE TABLE IF NOT EXISTS quiz_results (
		id             BIGSERIAL PRIMARY KEY,
		session_id     VARCHAR(36) NOT NULL UNIQUE,
		user_id        BIGINT REFERENCES users(id) ON DELETE CASCADE,
		score          INT NOT NULL,
		total_questions INT NOT NULL,
		correct_answers INT NOT NULL,
		accuracy       DECIMAL(5,2) NOT NULL DEFAULT 0,
		completed_at   TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_results_user ON quiz_results(user_id);
	CREATE INDEX IF NOT EXISTS idx_results_score ON quiz_results(score DESC);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Idempotent for databases created before these columns existed.
	alterStatements := []string{
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS preferred_genre VARCHAR(50)`,
		`ALTER TABLE quiz_sessions ADD COLUMN IF NOT EXISTS version BIGINT NOT NULL DEFAULT 1`,
		`ALTER TABLE quiz_sessions ADD COLUMN IF NOT EXISTS correct_run INT NOT NULL DEFAULT 0`,
		`ALTER TABLE quiz_sessions ADD COLUMN IF NOT EXISTS incorrect_run INT NOT NULL DEFAULT 0`,
		`ALTER TABLE quiz_results ADD COLUMN IF NOT EXISTS accuracy DECIMAL(5,2) NOT NULL DEFAULT 0`,
	}
	for _, stmt := range alterStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("alter table failed: %w", err)
		}
	}

	return nil
}
