package movies

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/reel-trivia/backend/internal/models"
)

// SeedFromCSV imports the movie dataset into an empty catalog. Header names
// follow the original dataset export (mixed case, stray quotes and
// newlines), so matching is normalized. A non-empty catalog is left alone.
func SeedFromCSV(ctx context.Context, store *Store, path string) error {
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("[movies] catalog already has %d movies, skipping seed", count)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open movie dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read dataset header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[normalizeHeader(name)] = i
	}

	imported := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read dataset row: %w", err)
		}

		movie := recordToMovie(record, cols)
		if movie.Title == "" {
			continue
		}
		if err := store.Insert(ctx, movie); err != nil {
			log.Printf("WARN: skipping movie %q: %v", movie.Title, err)
			continue
		}
		imported++
	}

	log.Printf("[movies] seeded %d movies from %s", imported, path)
	return nil
}

func recordToMovie(record []string, cols map[string]int) models.Movie {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var actors []string
	for _, key := range []string{"actor 1", "actor 2", "actor 3", "actor 4"} {
		if a := field(key); a != "" {
			actors = append(actors, a)
		}
	}

	rank := 0
	for name, i := range cols {
		if strings.Contains(name, "ranking") && i < len(record) {
			if n, err := strconv.Atoi(strings.TrimSpace(record[i])); err == nil {
				rank = n
			}
			break
		}
	}

	return models.Movie{
		Title:       field("movie name"),
		Year:        strings.ReplaceAll(field("year"), "-", ""),
		Genre:       field("genre"),
		Director:    field("director"),
		Actors:      actors,
		Plot:        field("detail about movie"),
		Rating:      field("rating"),
		Metascore:   field("metascore"),
		Certificate: field("certificate"),
		Runtime:     field("runtime"),
		Rank:        rank,
	}
}

func normalizeHeader(name string) string {
	name = strings.ReplaceAll(name, `"`, "")
	name = strings.ReplaceAll(name, "\n", "")
	return strings.ToLower(strings.TrimSpace(name))
}
