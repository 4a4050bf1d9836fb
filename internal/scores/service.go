package scores

import (
	"context"
	"fmt"
	"log"

	"github.com/reel-trivia/backend/internal/models"
)

// SessionTally exposes the quiz engine's server-side answer log for a
// completed session, and lets the service discard the session once its
// result is persisted. The engine's tally, not the client's aggregates, is
// what gets persisted.
type SessionTally interface {
	Tally(ctx context.Context, sessionID string) (*models.QuizSession, error)
	Discard(ctx context.Context, sessionID string) error
}

// ResultStore is the persistence surface the service needs; implemented by
// Store and by the in-memory fake in tests.
type ResultStore interface {
	SaveResult(ctx context.Context, result models.QuizResult) (bool, error)
	GetResult(ctx context.Context, sessionID string) (*models.QuizResult, error)
}

type Service struct {
	store ResultStore
	tally SessionTally
}

func NewService(store ResultStore, tally SessionTally) *Service {
	return &Service{store: store, tally: tally}
}

// Finalize persists the aggregate outcome of a completed session. It is
// idempotent: the result row is keyed by session ID, so calling it again
// returns the already-saved aggregates without double-counting.
func (s *Service) Finalize(ctx context.Context, req models.CompleteQuizRequest) (*models.CompleteQuizResponse, error) {
	// The session is discarded after its result is saved, so a repeat
	// finalize is answered from the saved result instead of the session.
	existing, err := s.store.GetResult(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("finalize session %s: %w", req.SessionID, err)
	}
	if existing != nil {
		return &models.CompleteQuizResponse{
			SessionID:      existing.SessionID,
			FinalScore:     existing.Score,
			CorrectAnswers: existing.CorrectAnswers,
			TotalQuestions: existing.TotalQuestions,
			Accuracy:       existing.Accuracy,
			AlreadySaved:   true,
		}, nil
	}

	session, err := s.tally.Tally(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	correct := session.CorrectCount()
	total := len(session.Questions)

	// The client's numbers are informational only; log drift and move on.
	if req.FinalScore != session.Score || req.CorrectAnswers != correct || (req.TotalQuestions != 0 && req.TotalQuestions != total) {
		log.Printf("WARN: client aggregates for session %s differ from server tally (client score=%d correct=%d, server score=%d correct=%d)",
			session.ID, req.FinalScore, req.CorrectAnswers, session.Score, correct)
	}

	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}

	alreadySaved, err := s.store.SaveResult(ctx, models.QuizResult{
		SessionID:      session.ID,
		UserID:         session.UserID,
		Score:          session.Score,
		CorrectAnswers: correct,
		TotalQuestions: total,
		Accuracy:       accuracy,
	})
	if err != nil {
		return nil, fmt.Errorf("finalize session %s: %w", session.ID, err)
	}

	// The result row is the durable record; the session itself is done.
	if err := s.tally.Discard(ctx, session.ID); err != nil {
		log.Printf("WARN: discard session %s after finalize: %v", session.ID, err)
	}

	return &models.CompleteQuizResponse{
		SessionID:      session.ID,
		FinalScore:     session.Score,
		CorrectAnswers: correct,
		TotalQuestions: total,
		Accuracy:       accuracy,
		AlreadySaved:   alreadySaved,
	}, nil
}
