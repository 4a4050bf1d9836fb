package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/reel-trivia/backend/internal/models"
)

type GeneratedBatch struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type GeneratedQuestion struct {
	Prompt      string            `json:"question"`
	Options     []string          `json:"options"`
	AnswerIndex int               `json:"answer_index"`
	Difficulty  models.Difficulty `json:"difficulty"`
	MovieTitle  string            `json:"-"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseResponse decodes a model response into a question batch, tolerating
// markdown code fences, and validates its structure.
func ParseResponse(responseBody string) (*GeneratedBatch, error) {
	cleaned := stripCodeFences(responseBody)

	var batch GeneratedBatch
	if err := json.Unmarshal([]byte(cleaned), &batch); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateBatch(&batch); err != nil {
		return nil, err
	}

	return &batch, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

var validDifficulties = map[models.Difficulty]bool{
	models.DifficultyEasy:   true,
	models.DifficultyMedium: true,
	models.DifficultyHard:   true,
}

func validateBatch(batch *GeneratedBatch) error {
	var errs []string

	if len(batch.Questions) == 0 {
		return &ValidationError{Errors: []string{"no questions in batch"}}
	}

	for i, q := range batch.Questions {
		qNum := i + 1

		if len(strings.TrimSpace(q.Prompt)) < 10 {
			errs = append(errs, fmt.Sprintf("question %d: prompt too short", qNum))
		}
		if len(q.Options) != 4 {
			errs = append(errs, fmt.Sprintf("question %d: expected 4 options, got %d", qNum, len(q.Options)))
			continue
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("question %d: answer_index %d out of range", qNum, q.AnswerIndex))
		}
		for j, opt := range q.Options {
			if len(strings.TrimSpace(opt)) < 2 {
				errs = append(errs, fmt.Sprintf("question %d: option %d is empty or too short", qNum, j+1))
			}
		}
		if q.Difficulty != "" && !validDifficulties[q.Difficulty] {
			errs = append(errs, fmt.Sprintf("question %d: invalid difficulty %q", qNum, q.Difficulty))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}
