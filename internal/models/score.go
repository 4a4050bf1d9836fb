package models

import "time"

// QuizResult is one finalized session outcome, keyed by session ID so a
// repeated finalize never double-counts.
type QuizResult struct {
	ID             int64     `json:"id"`
	SessionID      string    `json:"session_id"`
	UserID         *int64    `json:"user_id,omitempty"`
	Score          int       `json:"score"`
	CorrectAnswers int       `json:"correct_answers"`
	TotalQuestions int       `json:"total_questions"`
	Accuracy       float64   `json:"accuracy"`
	CompletedAt    time.Time `json:"completed_at"`
}

type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	UserID      int64   `json:"user_id"`
	Name        string  `json:"name"`
	BestScore   int     `json:"best_score"`
	GamesPlayed int     `json:"games_played"`
	AvgAccuracy float64 `json:"avg_accuracy"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
	Total   int                `json:"total"`
}

type ProfileResponse struct {
	UserID         int64        `json:"user_id"`
	Name           string       `json:"name"`
	PreferredGenre string       `json:"preferred_genre,omitempty"`
	GamesPlayed    int          `json:"games_played"`
	BestScore      int          `json:"best_score"`
	TotalScore     int          `json:"total_score"`
	AvgAccuracy    float64      `json:"avg_accuracy"`
	Recent         []QuizResult `json:"recent"`
}
