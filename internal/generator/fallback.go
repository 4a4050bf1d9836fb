package generator

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/reel-trivia/backend/internal/models"
)

// Wrong-option pools for template questions. Real catalog values would be
// better distractors, but the fallback must work with a single movie in hand.
var (
	distractorDirectors = []string{
		"Steven Spielberg", "Martin Scorsese", "Christopher Nolan",
		"Quentin Tarantino", "Ridley Scott", "David Fincher",
		"Denis Villeneuve", "James Cameron",
	}
	distractorActors = []string{
		"Tom Hanks", "Meryl Streep", "Denzel Washington",
		"Cate Blanchett", "Leonardo DiCaprio", "Frances McDormand",
		"Brad Pitt", "Viola Davis",
	}
	distractorGenres = []string{
		"Action", "Drama", "Comedy", "Horror", "Thriller",
		"Romance", "Sci-Fi", "Crime", "Western", "Fantasy",
	}
)

// FallbackQuestion builds a template question for a movie when model
// generation is unavailable. Question type is picked from whatever fields
// the movie actually has.
func FallbackQuestion(movie models.Movie, level int) GeneratedQuestion {
	type template struct {
		prompt  string
		correct string
		wrong   func() []string
	}

	var candidates []template

	if year, err := strconv.Atoi(movie.Year); err == nil {
		candidates = append(candidates, template{
			prompt:  fmt.Sprintf("In which year was '%s' released?", movie.Title),
			correct: movie.Year,
			wrong: func() []string {
				offsets := []int{-3, -1, 2, 4, -5, 3}
				rand.Shuffle(len(offsets), func(i, j int) { offsets[i], offsets[j] = offsets[j], offsets[i] })
				wrong := make([]string, 0, 3)
				for _, off := range offsets {
					if len(wrong) == 3 {
						break
					}
					wrong = append(wrong, strconv.Itoa(year+off))
				}
				return wrong
			},
		})
	}

	if movie.Director != "" {
		candidates = append(candidates, template{
			prompt:  fmt.Sprintf("Who directed '%s'?", movie.Title),
			correct: movie.Director,
			wrong:   func() []string { return pickDistinct(distractorDirectors, movie.Director, 3) },
		})
	}

	if len(movie.Actors) > 0 {
		lead := movie.Actors[0]
		candidates = append(candidates, template{
			prompt:  fmt.Sprintf("Which of these actors starred in '%s'?", movie.Title),
			correct: lead,
			wrong:   func() []string { return pickDistinct(distractorActors, lead, 3) },
		})
	}

	if movie.Genre != "" {
		primary := movie.PrimaryGenre()
		candidates = append(candidates, template{
			prompt:  fmt.Sprintf("What is the primary genre of '%s'?", movie.Title),
			correct: primary,
			wrong:   func() []string { return pickDistinct(distractorGenres, primary, 3) },
		})
	}

	if len(candidates) == 0 {
		// Degenerate catalog row; still produce something answerable.
		candidates = append(candidates, template{
			prompt:  fmt.Sprintf("Which of these films is titled '%s'?", movie.Title),
			correct: movie.Title,
			wrong: func() []string {
				return []string{"The Quiet Harbor", "Midnight Courier", "Glass Orchard"}
			},
		})
	}

	chosen := candidates[rand.Intn(len(candidates))]

	options := append([]string{chosen.correct}, chosen.wrong()...)
	rand.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	answerIndex := 0
	for i, opt := range options {
		if opt == chosen.correct {
			answerIndex = i
			break
		}
	}

	return GeneratedQuestion{
		Prompt:      chosen.prompt,
		Options:     options,
		AnswerIndex: answerIndex,
		Difficulty:  models.DifficultyForLevel(level),
		MovieTitle:  movie.Title,
	}
}

// pickDistinct draws n entries from pool, skipping any equal to exclude.
func pickDistinct(pool []string, exclude string, n int) []string {
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	picked := make([]string, 0, n)
	for _, s := range shuffled {
		if s == exclude {
			continue
		}
		picked = append(picked, s)
		if len(picked) == n {
			break
		}
	}
	return picked
}
