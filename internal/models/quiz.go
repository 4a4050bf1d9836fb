package models

import "time"

// TimeoutSentinel is the answer index the client submits when the
// per-question deadline expired without a choice.
const TimeoutSentinel = -1

type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionComplete SessionStatus = "complete"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyForLevel maps a numeric difficulty level to its tag.
func DifficultyForLevel(level int) Difficulty {
	switch {
	case level <= 1:
		return DifficultyEasy
	case level == 2:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// Question is the server-side view of a quiz question. CorrectIndex never
// leaves the backend before the question has been graded.
type Question struct {
	ID           string     `json:"id"`
	Prompt       string     `json:"question"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"-"`
	Difficulty   Difficulty `json:"difficulty"`
	MovieTitle   string     `json:"-"`
}

// Sanitize strips the correct answer and stamps the question's position
// within the session.
func (q Question) Sanitize(number, total int) QuizQuestion {
	return QuizQuestion{
		ID:         q.ID,
		Prompt:     q.Prompt,
		Options:    q.Options,
		Difficulty: q.Difficulty,
		Number:     number,
		Total:      total,
	}
}

// QuizQuestion is the sanitized payload served to clients.
type QuizQuestion struct {
	ID         string     `json:"id"`
	Prompt     string     `json:"question"`
	Options    []string   `json:"options"`
	Difficulty Difficulty `json:"difficulty"`
	Number     int        `json:"number"`
	Total      int        `json:"total"`
}

// AnswerRecord is one entry in a session's per-question log.
type AnswerRecord struct {
	QuestionID      string `json:"question_id"`
	GivenIndex      int    `json:"given"`
	CorrectIndex    int    `json:"correct_index"`
	Correct         bool   `json:"correct"`
	Timeout         bool   `json:"timeout"`
	TimeLeft        int    `json:"time_left"`
	DifficultyLevel int    `json:"difficulty_level"`
}

// QuizSession holds the full state of one run through a question sequence.
// Version supports optimistic concurrency at the store layer: every state
// change increments it, and updates carry the version they were read at.
type QuizSession struct {
	ID              string         `json:"session_id"`
	UserID          *int64         `json:"user_id,omitempty"`
	Questions       []Question     `json:"questions"`
	CurrentIndex    int            `json:"current_index"`
	Score           int            `json:"score"`
	DifficultyLevel int            `json:"difficulty_level"`
	CorrectRun      int            `json:"correct_run"`
	IncorrectRun    int            `json:"incorrect_run"`
	Answers         []AnswerRecord `json:"answers"`
	Status          SessionStatus  `json:"status"`
	Version         int64          `json:"version"`
	CreatedAt       time.Time      `json:"created_at"`
}

// CurrentQuestion returns the question awaiting an answer.
// Only valid while the session is active.
func (s *QuizSession) CurrentQuestion() Question {
	return s.Questions[s.CurrentIndex]
}

// QuestionsRemaining counts questions not yet graded, excluding the current one.
func (s *QuizSession) QuestionsRemaining() int {
	return len(s.Questions) - s.CurrentIndex - 1
}

// CorrectCount tallies correct answers from the server-side log.
func (s *QuizSession) CorrectCount() int {
	n := 0
	for _, a := range s.Answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// ── Request Types ─────────────────────────────────────

// TotalQuestions is a pointer so an omitted field (use the server default)
// is distinguishable from an explicit zero (rejected as invalid).
type StartQuizRequest struct {
	TotalQuestions *int   `json:"total_questions,omitempty"`
	UserID         *int64 `json:"user_id,omitempty"`
}

type SubmitAnswerRequest struct {
	SessionID   string `json:"session_id"`
	QuestionID  string `json:"question_id"`
	AnswerIndex int    `json:"answer_index"`
	TimeLeft    int    `json:"time_left"`
}

type CompleteQuizRequest struct {
	SessionID      string `json:"session_id"`
	FinalScore     int    `json:"final_score"`
	CorrectAnswers int    `json:"correct_answers"`
	TotalQuestions int    `json:"total_questions"`
}

// ── Response Types ────────────────────────────────────

type StartQuizResponse struct {
	SessionID          string       `json:"session_id"`
	Question           QuizQuestion `json:"question"`
	Score              int          `json:"score"`
	QuestionsRemaining int          `json:"questions_remaining"`
}

type SubmitAnswerResponse struct {
	Correct            bool          `json:"correct"`
	CorrectIndex       int           `json:"correct_index"`
	Score              int           `json:"score"`
	QuizComplete       bool          `json:"quiz_complete"`
	NextQuestion       *QuizQuestion `json:"next_question,omitempty"`
	DifficultyLevel    int           `json:"difficulty_level"`
	QuestionsRemaining int           `json:"questions_remaining"`
}

type CompleteQuizResponse struct {
	SessionID      string  `json:"session_id"`
	FinalScore     int     `json:"final_score"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
	Accuracy       float64 `json:"accuracy"`
	AlreadySaved   bool    `json:"already_saved"`
}
