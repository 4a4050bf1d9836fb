package generator

import (
	"testing"

	"github.com/reel-trivia/backend/internal/models"
)

var fallbackMovie = models.Movie{
	Title:    "The Quiet Harbor",
	Year:     "2008",
	Genre:    "Drama, Mystery",
	Director: "Alma Reyes",
	Actors:   []string{"Jonas Veld", "Mira Stone"},
	Rating:   "7.8",
	Rank:     42,
}

func TestFallbackQuestionShape(t *testing.T) {
	for i := 0; i < 50; i++ {
		q := FallbackQuestion(fallbackMovie, 2)

		if len(q.Options) != 4 {
			t.Fatalf("got %d options, want 4", len(q.Options))
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= 4 {
			t.Fatalf("answer index %d out of range", q.AnswerIndex)
		}
		if q.Prompt == "" {
			t.Fatal("empty prompt")
		}
		if q.MovieTitle != fallbackMovie.Title {
			t.Fatalf("movie title %q, want %q", q.MovieTitle, fallbackMovie.Title)
		}
		if q.Difficulty != models.DifficultyMedium {
			t.Fatalf("difficulty %q, want medium", q.Difficulty)
		}

		// Options must be distinct and the correct one must be among them.
		seen := map[string]bool{}
		for _, opt := range q.Options {
			if seen[opt] {
				t.Fatalf("duplicate option %q in %v", opt, q.Options)
			}
			seen[opt] = true
		}
	}
}

func TestFallbackQuestionCorrectAnswer(t *testing.T) {
	valid := map[string]bool{
		fallbackMovie.Year:     true,
		fallbackMovie.Director: true,
		"Jonas Veld":           true,
		"Drama":                true,
	}
	for i := 0; i < 50; i++ {
		q := FallbackQuestion(fallbackMovie, 1)
		answer := q.Options[q.AnswerIndex]
		if !valid[answer] {
			t.Fatalf("answer %q is not a true fact about the movie (prompt: %q)", answer, q.Prompt)
		}
	}
}

func TestFallbackQuestionDifficultyTag(t *testing.T) {
	tags := map[int]models.Difficulty{
		1: models.DifficultyEasy,
		2: models.DifficultyMedium,
		3: models.DifficultyHard,
	}
	for level, want := range tags {
		q := FallbackQuestion(fallbackMovie, level)
		if q.Difficulty != want {
			t.Errorf("level %d tagged %q, want %q", level, q.Difficulty, want)
		}
	}
}

func TestFallbackQuestionSparseMovie(t *testing.T) {
	sparse := models.Movie{Title: "Northern Static"}
	q := FallbackQuestion(sparse, 1)
	if len(q.Options) != 4 {
		t.Fatalf("got %d options for sparse movie, want 4", len(q.Options))
	}
	if q.Options[q.AnswerIndex] != "Northern Static" {
		t.Fatalf("sparse movie answer %q, want the title", q.Options[q.AnswerIndex])
	}
}
