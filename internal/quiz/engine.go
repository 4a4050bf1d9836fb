package quiz

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/reel-trivia/backend/internal/models"
)

// QuestionSeconds is the client-observed per-question deadline. The server
// never runs a timer; it only clamps the reported time_left to this bound
// when scoring.
const QuestionSeconds = 30

// Config holds the engine's tunable scoring and adaptation knobs.
type Config struct {
	DefaultTotalQuestions int
	BasePoints            int
	TimeBonus             int
	MinDifficulty         int
	MaxDifficulty         int
	RaiseStreak           int
	DropStreak            int
}

func DefaultConfig() Config {
	return Config{
		DefaultTotalQuestions: 10,
		BasePoints:            100,
		TimeBonus:             5,
		MinDifficulty:         1,
		MaxDifficulty:         3,
		RaiseStreak:           2,
		DropStreak:            2,
	}
}

// GenreLookup resolves a user's preferred genre, if any. Unauthenticated
// sessions get the unfiltered question pool.
type GenreLookup func(ctx context.Context, userID int64) (string, error)

// Engine owns the per-session state machine: start, grade, adapt difficulty,
// detect completion. It holds no session state itself; everything lives in
// the SessionStore so each request/response cycle is independent.
type Engine struct {
	store       SessionStore
	source      QuestionSource
	genreLookup GenreLookup
	cfg         Config
}

func NewEngine(store SessionStore, source QuestionSource, cfg Config) *Engine {
	if cfg.DefaultTotalQuestions <= 0 {
		cfg.DefaultTotalQuestions = 10
	}
	if cfg.MaxDifficulty < cfg.MinDifficulty {
		cfg.MaxDifficulty = cfg.MinDifficulty
	}
	return &Engine{store: store, source: source, cfg: cfg}
}

// SetGenreLookup injects the user-preference resolver used at session start.
func (e *Engine) SetGenreLookup(fn GenreLookup) {
	e.genreLookup = fn
}

func (e *Engine) Start(ctx context.Context, req models.StartQuizRequest) (*models.StartQuizResponse, error) {
	total := e.cfg.DefaultTotalQuestions
	if req.TotalQuestions != nil {
		if *req.TotalQuestions <= 0 {
			return nil, fmt.Errorf("%w: total_questions must be positive, got %d", ErrInvalidConfig, *req.TotalQuestions)
		}
		total = *req.TotalQuestions
	}

	genre := ""
	if req.UserID != nil && e.genreLookup != nil {
		g, err := e.genreLookup(ctx, *req.UserID)
		if err != nil {
			log.Printf("WARN: genre lookup for user %d failed: %v", *req.UserID, err)
		} else {
			genre = g
		}
	}

	questions, err := e.source.SelectQuestions(ctx, genre, e.cfg.MinDifficulty, total)
	if err != nil {
		return nil, fmt.Errorf("%w: select questions: %v", ErrUpstreamUnavailable, err)
	}
	if len(questions) < total {
		return nil, fmt.Errorf("%w: question source returned %d of %d questions", ErrUpstreamUnavailable, len(questions), total)
	}
	questions = questions[:total]

	session := &models.QuizSession{
		ID:              uuid.New().String(),
		UserID:          req.UserID,
		Questions:       questions,
		CurrentIndex:    0,
		Score:           0,
		DifficultyLevel: e.cfg.MinDifficulty,
		Status:          models.SessionActive,
		Version:         1,
		CreatedAt:       time.Now().UTC(),
	}

	if err := e.store.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: create session: %v", ErrUpstreamUnavailable, err)
	}

	return &models.StartQuizResponse{
		SessionID:          session.ID,
		Question:           questions[0].Sanitize(1, total),
		Score:              0,
		QuestionsRemaining: total - 1,
	}, nil
}

// SubmitAnswer grades the current question, adapts difficulty, and advances
// the session. The optimistic update loop guarantees at-most-one grading per
// question: a concurrent duplicate loses the version race, re-reads, and
// fails the current-question check.
func (e *Engine) SubmitAnswer(ctx context.Context, req models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	const maxAttempts = 3

	var conflictErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		session, err := e.store.Get(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		if session.Status != models.SessionActive {
			return nil, ErrSessionNotFound
		}

		current := session.CurrentQuestion()
		if current.ID != req.QuestionID {
			return nil, fmt.Errorf("%w: got %s, current is %s", ErrQuestionMismatch, req.QuestionID, current.ID)
		}

		resp := e.grade(session, current, req.AnswerIndex, req.TimeLeft)

		expected := session.Version
		session.Version++
		if err := e.store.Update(ctx, session, expected); err != nil {
			if err == ErrVersionConflict {
				conflictErr = err
				continue
			}
			return nil, fmt.Errorf("%w: update session: %v", ErrUpstreamUnavailable, err)
		}
		return resp, nil
	}
	return nil, fmt.Errorf("%w: gave up after %d attempts: %v", ErrUpstreamUnavailable, maxAttempts, conflictErr)
}

// grade mutates the in-memory session copy; the caller persists it.
func (e *Engine) grade(session *models.QuizSession, q models.Question, answerIndex, timeLeft int) *models.SubmitAnswerResponse {
	isTimeout := answerIndex == models.TimeoutSentinel
	isCorrect := !isTimeout && answerIndex == q.CorrectIndex

	timeLeft = clamp(timeLeft, 0, QuestionSeconds)

	if isCorrect {
		session.Score += Points(e.cfg.BasePoints, e.cfg.TimeBonus, session.DifficultyLevel, timeLeft)
		session.CorrectRun++
		session.IncorrectRun = 0
	} else {
		session.CorrectRun = 0
		session.IncorrectRun++
	}

	session.Answers = append(session.Answers, models.AnswerRecord{
		QuestionID:      q.ID,
		GivenIndex:      answerIndex,
		CorrectIndex:    q.CorrectIndex,
		Correct:         isCorrect,
		Timeout:         isTimeout,
		TimeLeft:        timeLeft,
		DifficultyLevel: session.DifficultyLevel,
	})

	newLevel := NextDifficulty(session.DifficultyLevel, session.CorrectRun, session.IncorrectRun,
		e.cfg.RaiseStreak, e.cfg.DropStreak, e.cfg.MinDifficulty, e.cfg.MaxDifficulty)
	if newLevel != session.DifficultyLevel {
		session.DifficultyLevel = newLevel
		session.CorrectRun = 0
		session.IncorrectRun = 0
	}

	session.CurrentIndex++

	resp := &models.SubmitAnswerResponse{
		Correct:         isCorrect,
		CorrectIndex:    q.CorrectIndex,
		Score:           session.Score,
		DifficultyLevel: session.DifficultyLevel,
	}

	if session.CurrentIndex >= len(session.Questions) {
		session.Status = models.SessionComplete
		resp.QuizComplete = true
		resp.QuestionsRemaining = 0
		return resp
	}

	next := session.CurrentQuestion().Sanitize(session.CurrentIndex+1, len(session.Questions))
	resp.NextQuestion = &next
	resp.QuestionsRemaining = session.QuestionsRemaining()
	return resp
}

// Tally recomputes a completed session's aggregates from the server-side
// answer log. Finalization trusts this, never the client's numbers.
func (e *Engine) Tally(ctx context.Context, sessionID string) (*models.QuizSession, error) {
	session, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionComplete {
		return nil, fmt.Errorf("%w: session %s is not complete", ErrSessionNotFound, sessionID)
	}
	return session, nil
}

// Discard removes a session once its result has been persisted, so the
// store does not accumulate finished sessions.
func (e *Engine) Discard(ctx context.Context, sessionID string) error {
	return e.store.Delete(ctx, sessionID)
}
