package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/reel-trivia/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource hands out deterministic questions where option 0 is always
// correct, so tests can choose right or wrong answers at will.
type stubSource struct {
	err error
}

func (s *stubSource) SelectQuestions(ctx context.Context, genre string, level, count int) ([]models.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	questions := make([]models.Question, count)
	for i := range questions {
		questions[i] = models.Question{
			ID:           fmt.Sprintf("q-%d", i+1),
			Prompt:       fmt.Sprintf("Who directed test movie %d?", i+1),
			Options:      []string{"Right Answer", "Wrong A", "Wrong B", "Wrong C"},
			CorrectIndex: 0,
			Difficulty:   models.DifficultyForLevel(level),
			MovieTitle:   fmt.Sprintf("Test Movie %d", i+1),
		}
	}
	return questions, nil
}

func newTestEngine(t *testing.T, total int) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DefaultTotalQuestions = total
	return NewEngine(NewMemoryStore(), &stubSource{}, cfg)
}

func intPtr(n int) *int {
	return &n
}

func startSession(t *testing.T, e *Engine, total int) *models.StartQuizResponse {
	t.Helper()
	resp, err := e.Start(context.Background(), models.StartQuizRequest{TotalQuestions: intPtr(total)})
	require.NoError(t, err)
	return resp
}

func TestStartDefaultsTotalQuestions(t *testing.T) {
	e := newTestEngine(t, 5)

	// Omitted total_questions decodes to nil and means "use the default".
	resp, err := e.Start(context.Background(), models.StartQuizRequest{})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 0, resp.Score)
	assert.Equal(t, 4, resp.QuestionsRemaining)
	assert.Equal(t, 1, resp.Question.Number)
	assert.Equal(t, 5, resp.Question.Total)
}

func TestStartRejectsNonPositiveTotal(t *testing.T) {
	e := newTestEngine(t, 5)

	for _, total := range []int{0, -1, -10} {
		_, err := e.Start(context.Background(), models.StartQuizRequest{TotalQuestions: intPtr(total)})
		assert.ErrorIs(t, err, ErrInvalidConfig, "total_questions=%d must be rejected", total)
	}
}

func TestStartSourceFailure(t *testing.T) {
	e := NewEngine(NewMemoryStore(), &stubSource{err: errors.New("catalog offline")}, DefaultConfig())

	_, err := e.Start(context.Background(), models.StartQuizRequest{TotalQuestions: intPtr(3)})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestSubmitCorrectAnswerScores(t *testing.T) {
	e := newTestEngine(t, 3)
	start := startSession(t, e, 3)

	resp, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
		SessionID:   start.SessionID,
		QuestionID:  start.Question.ID,
		AnswerIndex: 0,
		TimeLeft:    20,
	})
	require.NoError(t, err)

	assert.True(t, resp.Correct)
	assert.Equal(t, 0, resp.CorrectIndex)
	// 100*1 + 5*20 at starting difficulty
	assert.Equal(t, 200, resp.Score)
	assert.False(t, resp.QuizComplete)
	require.NotNil(t, resp.NextQuestion)
	assert.Equal(t, 2, resp.NextQuestion.Number)
	assert.Equal(t, 1, resp.QuestionsRemaining)
}

func TestSubmitWrongAnswerNeverScores(t *testing.T) {
	e := newTestEngine(t, 3)
	start := startSession(t, e, 3)

	resp, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
		SessionID:   start.SessionID,
		QuestionID:  start.Question.ID,
		AnswerIndex: 2,
		TimeLeft:    30,
	})
	require.NoError(t, err)

	assert.False(t, resp.Correct)
	assert.Equal(t, 0, resp.Score)
}

func TestTimeoutNeverScores(t *testing.T) {
	e := newTestEngine(t, 3)
	start := startSession(t, e, 3)

	resp, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
		SessionID:   start.SessionID,
		QuestionID:  start.Question.ID,
		AnswerIndex: models.TimeoutSentinel,
		TimeLeft:    0,
	})
	require.NoError(t, err)

	assert.False(t, resp.Correct)
	assert.Equal(t, 0, resp.Score)
}

func TestScoreMonotone(t *testing.T) {
	e := newTestEngine(t, 6)
	start := startSession(t, e, 6)

	// Mix of correct, wrong, and timeout answers; score must never decrease.
	answers := []int{0, 2, models.TimeoutSentinel, 0, 0, 3}
	prevScore := 0
	questionID := start.Question.ID

	for _, ans := range answers {
		resp, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
			SessionID:   start.SessionID,
			QuestionID:  questionID,
			AnswerIndex: ans,
			TimeLeft:    10,
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, resp.Score, prevScore)
		if ans == 0 {
			assert.Greater(t, resp.Score, prevScore, "correct answer must strictly increase the score")
		}
		prevScore = resp.Score
		if resp.NextQuestion != nil {
			questionID = resp.NextQuestion.ID
		}
	}
}

func TestQuizCompletesAfterLastQuestion(t *testing.T) {
	e := newTestEngine(t, 2)
	start := startSession(t, e, 2)

	first, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
		SessionID: start.SessionID, QuestionID: start.Question.ID, AnswerIndex: 0, TimeLeft: 5,
	})
	require.NoError(t, err)
	require.False(t, first.QuizComplete)

	last, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
		SessionID: start.SessionID, QuestionID: first.NextQuestion.ID, AnswerIndex: 1, TimeLeft: 5,
	})
	require.NoError(t, err)

	assert.True(t, last.QuizComplete)
	assert.Nil(t, last.NextQuestion)
	assert.Equal(t, 0, last.QuestionsRemaining)

	// A completed session no longer accepts answers.
	_, err = e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
		SessionID: start.SessionID, QuestionID: first.NextQuestion.ID, AnswerIndex: 0, TimeLeft: 5,
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDifficultyRaisesAfterStreak(t *testing.T) {
	e := newTestEngine(t, 6)
	start := startSession(t, e, 6)

	questionID := start.Question.ID
	levels := []int{}
	for i := 0; i < 6; i++ {
		resp, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
			SessionID: start.SessionID, QuestionID: questionID, AnswerIndex: 0, TimeLeft: 10,
		})
		require.NoError(t, err)
		levels = append(levels, resp.DifficultyLevel)
		if resp.NextQuestion != nil {
			questionID = resp.NextQuestion.ID
		}
	}

	// Two correct raises 1→2, two more raises 2→3, then the cap holds.
	assert.Equal(t, []int{1, 2, 2, 3, 3, 3}, levels)
}

func TestDifficultyDropsAfterMissStreakAndClamps(t *testing.T) {
	e := newTestEngine(t, 5)
	start := startSession(t, e, 5)

	questionID := start.Question.ID
	for i := 0; i < 5; i++ {
		resp, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
			SessionID: start.SessionID, QuestionID: questionID, AnswerIndex: models.TimeoutSentinel, TimeLeft: 0,
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, resp.DifficultyLevel, 1, "difficulty must never drop below the floor")
		if resp.NextQuestion != nil {
			questionID = resp.NextQuestion.ID
		}
	}
}

func TestQuestionMismatchLeavesSessionUnchanged(t *testing.T) {
	e := newTestEngine(t, 3)
	start := startSession(t, e, 3)

	_, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
		SessionID: start.SessionID, QuestionID: "q-999", AnswerIndex: 0, TimeLeft: 10,
	})
	assert.ErrorIs(t, err, ErrQuestionMismatch)

	// The real current question still grades normally afterwards.
	resp, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
		SessionID: start.SessionID, QuestionID: start.Question.ID, AnswerIndex: 0, TimeLeft: 10,
	})
	require.NoError(t, err)
	assert.True(t, resp.Correct)
	assert.Equal(t, 150, resp.Score)
}

func TestDuplicateSubmissionGradesOnce(t *testing.T) {
	e := newTestEngine(t, 3)
	start := startSession(t, e, 3)

	first, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
		SessionID: start.SessionID, QuestionID: start.Question.ID, AnswerIndex: 0, TimeLeft: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 150, first.Score)

	// Resending the same answer targets a question that is no longer current.
	_, err = e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
		SessionID: start.SessionID, QuestionID: start.Question.ID, AnswerIndex: 0, TimeLeft: 10,
	})
	assert.ErrorIs(t, err, ErrQuestionMismatch)

	// The score reflects exactly one grading.
	resp, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
		SessionID: start.SessionID, QuestionID: first.NextQuestion.ID, AnswerIndex: 1, TimeLeft: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 150, resp.Score)
}

func TestConcurrentDuplicateSubmissions(t *testing.T) {
	e := newTestEngine(t, 3)
	start := startSession(t, e, 3)

	// Two racing submissions of the same answer: one wins the version race,
	// the loser re-reads and fails the current-question check.
	const racers = 2
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
				SessionID: start.SessionID, QuestionID: start.Question.ID, AnswerIndex: 0, TimeLeft: 10,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, mismatched := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrQuestionMismatch):
			mismatched++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one submission may grade")
	assert.Equal(t, racers-1, mismatched)

	// Exactly one grading happened: one answer on record, one award of points.
	session, err := e.store.Get(context.Background(), start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 150, session.Score)
	assert.Len(t, session.Answers, 1)
	assert.Equal(t, 1, session.CurrentIndex)
}

func TestSubmitUnknownSession(t *testing.T) {
	e := newTestEngine(t, 3)

	_, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
		SessionID: "nope", QuestionID: "q-1", AnswerIndex: 0, TimeLeft: 10,
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSanitizedQuestionsNeverExposeAnswer(t *testing.T) {
	e := newTestEngine(t, 3)
	start := startSession(t, e, 3)

	// QuizQuestion has no correct-index field; verify positions instead.
	assert.Equal(t, 1, start.Question.Number)
	assert.Equal(t, 3, start.Question.Total)
	assert.Len(t, start.Question.Options, 4)
}

func TestTallyRequiresCompletedSession(t *testing.T) {
	e := newTestEngine(t, 2)
	start := startSession(t, e, 2)

	_, err := e.Tally(context.Background(), start.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	first, err := e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
		SessionID: start.SessionID, QuestionID: start.Question.ID, AnswerIndex: 0, TimeLeft: 10,
	})
	require.NoError(t, err)
	_, err = e.SubmitAnswer(context.Background(), models.SubmitAnswerRequest{
		SessionID: start.SessionID, QuestionID: first.NextQuestion.ID, AnswerIndex: 1, TimeLeft: 10,
	})
	require.NoError(t, err)

	session, err := e.Tally(context.Background(), start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionComplete, session.Status)
	assert.Equal(t, 1, session.CorrectCount())
	assert.Equal(t, 150, session.Score)
}
