package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/reel-trivia/backend/internal/models"
)

// PostgresStore persists sessions to the quiz_sessions table. The version
// column backs the optimistic update: UPDATE ... WHERE version = $expected
// affects zero rows when another request got there first.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// storedQuestion carries the full question, correct index included, for the
// session record. The public Question JSON view strips the correct index, so
// persistence uses its own encoding.
type storedQuestion struct {
	ID           string            `json:"id"`
	Prompt       string            `json:"prompt"`
	Options      []string          `json:"options"`
	CorrectIndex int               `json:"correct_index"`
	Difficulty   models.Difficulty `json:"difficulty"`
	MovieTitle   string            `json:"movie_title,omitempty"`
}

func encodeQuestions(questions []models.Question) ([]byte, error) {
	stored := make([]storedQuestion, len(questions))
	for i, q := range questions {
		stored[i] = storedQuestion{
			ID:           q.ID,
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Difficulty:   q.Difficulty,
			MovieTitle:   q.MovieTitle,
		}
	}
	return json.Marshal(stored)
}

func decodeQuestions(raw []byte) ([]models.Question, error) {
	var stored []storedQuestion
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	questions := make([]models.Question, len(stored))
	for i, sq := range stored {
		questions[i] = models.Question{
			ID:           sq.ID,
			Prompt:       sq.Prompt,
			Options:      sq.Options,
			CorrectIndex: sq.CorrectIndex,
			Difficulty:   sq.Difficulty,
			MovieTitle:   sq.MovieTitle,
		}
	}
	return questions, nil
}

func (p *PostgresStore) Create(ctx context.Context, session *models.QuizSession) error {
	questionsJSON, err := encodeQuestions(session.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	answersJSON, err := json.Marshal(session.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	_, err = p.db.ExecContext(ctx,
		`INSERT INTO quiz_sessions
		 (id, user_id, questions, current_index, score, difficulty_level,
		  correct_run, incorrect_run, answers, status, version, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		session.ID, session.UserID, questionsJSON, session.CurrentIndex, session.Score,
		session.DifficultyLevel, session.CorrectRun, session.IncorrectRun,
		answersJSON, session.Status, session.Version, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, sessionID string) (*models.QuizSession, error) {
	var s models.QuizSession
	var questionsJSON, answersJSON []byte

	err := p.db.QueryRowContext(ctx,
		`SELECT id, user_id, questions, current_index, score, difficulty_level,
		        correct_run, incorrect_run, answers, status, version, created_at
		 FROM quiz_sessions WHERE id = $1`,
		sessionID,
	).Scan(&s.ID, &s.UserID, &questionsJSON, &s.CurrentIndex, &s.Score, &s.DifficultyLevel,
		&s.CorrectRun, &s.IncorrectRun, &answersJSON, &s.Status, &s.Version, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if s.Questions, err = decodeQuestions(questionsJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(answersJSON, &s.Answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return &s, nil
}

func (p *PostgresStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := p.db.ExecContext(ctx,
		`DELETE FROM quiz_sessions WHERE id = $1`, sessionID,
	); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (p *PostgresStore) Update(ctx context.Context, session *models.QuizSession, expectedVersion int64) error {
	answersJSON, err := json.Marshal(session.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	res, err := p.db.ExecContext(ctx,
		`UPDATE quiz_sessions
		 SET current_index = $1, score = $2, difficulty_level = $3,
		     correct_run = $4, incorrect_run = $5, answers = $6, status = $7, version = $8
		 WHERE id = $9 AND version = $10`,
		session.CurrentIndex, session.Score, session.DifficultyLevel,
		session.CorrectRun, session.IncorrectRun, answersJSON, session.Status,
		session.Version, session.ID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if affected == 0 {
		// Either the session is gone or someone advanced it first.
		var exists bool
		if err := p.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM quiz_sessions WHERE id = $1)`, session.ID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("update session: %w", err)
		}
		if !exists {
			return ErrSessionNotFound
		}
		return ErrVersionConflict
	}
	return nil
}
