package models

import "strings"

// Movie is one row of the movie catalog the question generator draws from.
type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Year        string   `json:"year"`
	Genre       string   `json:"genre"`
	Director    string   `json:"director"`
	Actors      []string `json:"actors"`
	Plot        string   `json:"plot"`
	Rating      string   `json:"rating"`
	Metascore   string   `json:"metascore"`
	Certificate string   `json:"certificate"`
	Runtime     string   `json:"runtime"`
	Rank        int      `json:"rank"`
}

// PrimaryGenre returns the first entry of a comma-separated genre list.
func (m Movie) PrimaryGenre() string {
	first, _, _ := strings.Cut(m.Genre, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return "Drama"
	}
	return first
}
