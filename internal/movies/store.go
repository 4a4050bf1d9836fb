package movies

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/reel-trivia/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Rank buckets partition the catalog by popularity: well-known movies make
// easy questions, obscure ones make hard questions.
func rankBounds(level int) (int, int) {
	switch {
	case level <= 1:
		return 0, 50
	case level == 2:
		return 50, 150
	default:
		return 150, 1 << 30
	}
}

// SelectMovies picks count random movies for question generation, filtered
// by genre when given and bucketed by rank for the difficulty level. When
// the bucket (or genre filter) can't fill the request, selection widens to
// the whole catalog rather than failing.
func (s *Store) SelectMovies(ctx context.Context, genre string, level, count int) ([]models.Movie, error) {
	minRank, maxRank := rankBounds(level)

	selected, err := s.query(ctx,
		`SELECT id, title, year, genre, director, actors, plot, rating, metascore, certificate, runtime, rank
		 FROM movies
		 WHERE ($1 = '' OR genre ILIKE '%' || $1 || '%')
		   AND rank > $2 AND rank <= $3
		 ORDER BY RANDOM() LIMIT $4`,
		genre, minRank, maxRank, count,
	)
	if err != nil {
		return nil, err
	}
	if len(selected) >= count {
		return selected, nil
	}

	// Widen: same genre, any rank.
	widened, err := s.query(ctx,
		`SELECT id, title, year, genre, director, actors, plot, rating, metascore, certificate, runtime, rank
		 FROM movies
		 WHERE ($1 = '' OR genre ILIKE '%' || $1 || '%')
		 ORDER BY RANDOM() LIMIT $2`,
		genre, count,
	)
	if err != nil {
		return nil, err
	}
	if len(widened) >= count || genre == "" {
		return widened, nil
	}

	// Last resort: ignore the genre preference entirely.
	return s.query(ctx,
		`SELECT id, title, year, genre, director, actors, plot, rating, metascore, certificate, runtime, rank
		 FROM movies
		 ORDER BY RANDOM() LIMIT $1`,
		count,
	)
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

func (s *Store) Insert(ctx context.Context, m models.Movie) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO movies (title, year, genre, director, actors, plot, rating, metascore, certificate, runtime, rank)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.Title, m.Year, m.Genre, m.Director, pq.Array(m.Actors),
		m.Plot, m.Rating, m.Metascore, m.Certificate, m.Runtime, m.Rank,
	)
	if err != nil {
		return fmt.Errorf("insert movie %q: %w", m.Title, err)
	}
	return nil
}

func (s *Store) query(ctx context.Context, sqlText string, args ...interface{}) ([]models.Movie, error) {
	rows, err := s.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("select movies: %w", err)
	}
	defer rows.Close()

	var result []models.Movie
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.Genre, &m.Director,
			pq.Array(&m.Actors), &m.Plot, &m.Rating, &m.Metascore,
			&m.Certificate, &m.Runtime, &m.Rank); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
