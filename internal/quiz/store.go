package quiz

import (
	"context"

	"github.com/reel-trivia/backend/internal/models"
)

// SessionStore persists quiz sessions. Update enforces an optimistic version
// check: the write only succeeds when the stored session still has
// expectedVersion, otherwise ErrVersionConflict is returned. That check is
// what keeps concurrent duplicate submissions from both advancing the same
// session.
type SessionStore interface {
	Create(ctx context.Context, session *models.QuizSession) error
	Get(ctx context.Context, sessionID string) (*models.QuizSession, error)
	Update(ctx context.Context, session *models.QuizSession, expectedVersion int64) error
	Delete(ctx context.Context, sessionID string) error
}

// QuestionSource supplies the fixed question sequence selected at session
// start. Implementations may filter by the user's preferred genre and weight
// selection by the starting difficulty level.
type QuestionSource interface {
	SelectQuestions(ctx context.Context, genre string, level, count int) ([]models.Question, error)
}
