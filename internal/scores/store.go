package scores

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reel-trivia/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveResult inserts a finalized session outcome. The unique constraint on
// session_id makes repeat finalization a no-op; the bool reports whether the
// row already existed.
func (s *Store) SaveResult(ctx context.Context, result models.QuizResult) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_results (session_id, user_id, score, correct_answers, total_questions, accuracy)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (session_id) DO NOTHING`,
		result.SessionID, result.UserID, result.Score,
		result.CorrectAnswers, result.TotalQuestions, result.Accuracy,
	)
	if err != nil {
		return false, fmt.Errorf("save result: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save result: %w", err)
	}
	return affected == 0, nil
}

func (s *Store) GetResult(ctx context.Context, sessionID string) (*models.QuizResult, error) {
	var r models.QuizResult
	err := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, user_id, score, correct_answers, total_questions, accuracy, completed_at
		 FROM quiz_results WHERE session_id = $1`,
		sessionID,
	).Scan(&r.ID, &r.SessionID, &r.UserID, &r.Score, &r.CorrectAnswers,
		&r.TotalQuestions, &r.Accuracy, &r.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	return &r, nil
}

// GetLeaderboard returns registered users ranked by their best score.
// Anonymous sessions have no user row and are excluded.
func (s *Store) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.name, MAX(r.score), COUNT(r.id), AVG(r.accuracy)
		 FROM quiz_results r
		 JOIN users u ON u.id = r.user_id
		 GROUP BY u.id, u.name
		 ORDER BY MAX(r.score) DESC, u.id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.BestScore, &e.GamesPlayed, &e.AvgAccuracy); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetProfile(ctx context.Context, userID int64) (*models.ProfileResponse, error) {
	var p models.ProfileResponse
	var genre sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(preferred_genre, '') FROM users WHERE id = $1`,
		userID,
	).Scan(&p.UserID, &p.Name, &genre)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile user: %w", err)
	}
	p.PreferredGenre = genre.String

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(SUM(score), 0), COALESCE(AVG(accuracy), 0)
		 FROM quiz_results WHERE user_id = $1`,
		userID,
	).Scan(&p.GamesPlayed, &p.BestScore, &p.TotalScore, &p.AvgAccuracy)
	if err != nil {
		return nil, fmt.Errorf("get profile stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, user_id, score, correct_answers, total_questions, accuracy, completed_at
		 FROM quiz_results WHERE user_id = $1
		 ORDER BY completed_at DESC LIMIT 10`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get recent results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.QuizResult
		if err := rows.Scan(&r.ID, &r.SessionID, &r.UserID, &r.Score, &r.CorrectAnswers,
			&r.TotalQuestions, &r.Accuracy, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		p.Recent = append(p.Recent, r)
	}
	if p.Recent == nil {
		p.Recent = []models.QuizResult{}
	}
	return &p, rows.Err()
}
