package generator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/reel-trivia/backend/internal/models"
)

// MovieSelector is the slice of the movie catalog the source needs.
type MovieSelector interface {
	SelectMovies(ctx context.Context, genre string, level, count int) ([]models.Movie, error)
}

// Source turns catalog movies into quiz questions. It satisfies the quiz
// engine's QuestionSource: select movies for the genre and difficulty, then
// generate one question per movie.
type Source struct {
	catalog   MovieSelector
	generator *Generator
}

func NewSource(catalog MovieSelector, generator *Generator) *Source {
	return &Source{catalog: catalog, generator: generator}
}

func (s *Source) SelectQuestions(ctx context.Context, genre string, level, count int) ([]models.Question, error) {
	selected, err := s.catalog.SelectMovies(ctx, genre, level, count)
	if err != nil {
		return nil, fmt.Errorf("select movies: %w", err)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("movie catalog is empty")
	}

	generated, err := s.generator.GenerateBatch(ctx, selected, level)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	questions := make([]models.Question, 0, len(generated))
	for _, g := range generated {
		difficulty := g.Difficulty
		if difficulty == "" {
			difficulty = models.DifficultyForLevel(level)
		}
		questions = append(questions, models.Question{
			ID:           uuid.New().String(),
			Prompt:       g.Prompt,
			Options:      g.Options,
			CorrectIndex: g.AnswerIndex,
			Difficulty:   difficulty,
			MovieTitle:   g.MovieTitle,
		})
	}
	return questions, nil
}
