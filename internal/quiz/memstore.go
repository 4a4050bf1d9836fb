package quiz

import (
	"context"
	"fmt"
	"sync"

	"github.com/reel-trivia/backend/internal/models"
)

// MemoryStore keeps sessions in process memory. Sessions are stored as deep
// copies so callers never share state with the store, and Update applies the
// same version check as the postgres store.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*models.QuizSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.QuizSession)}
}

func (m *MemoryStore) Create(ctx context.Context, session *models.QuizSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}
	m.sessions[session.ID] = copySession(session)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, sessionID string) (*models.QuizSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return copySession(stored), nil
}

func (m *MemoryStore) Update(ctx context.Context, session *models.QuizSession, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.sessions[session.ID]
	if !ok {
		return ErrSessionNotFound
	}
	if stored.Version != expectedVersion {
		return ErrVersionConflict
	}
	m.sessions[session.ID] = copySession(session)
	return nil
}

// Delete is idempotent: removing an absent session is not an error.
func (m *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}

func copySession(s *models.QuizSession) *models.QuizSession {
	cp := *s
	cp.Questions = make([]models.Question, len(s.Questions))
	copy(cp.Questions, s.Questions)
	for i := range cp.Questions {
		cp.Questions[i].Options = append([]string(nil), s.Questions[i].Options...)
	}
	cp.Answers = append([]models.AnswerRecord(nil), s.Answers...)
	return &cp
}
