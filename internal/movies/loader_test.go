package movies

import "testing"

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Movie Name", "movie name"},
		{`"Year"`, "year"},
		{" Genre \n", "genre"},
		{"DETAIL ABOUT MOVIE", "detail about movie"},
	}
	for _, tt := range tests {
		if got := normalizeHeader(tt.in); got != tt.want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRecordToMovie(t *testing.T) {
	header := []string{"movie name", "year", "genre", "director", "actor 1", "actor 2", "actor 3", "actor 4", "detail about movie", "rating", "metascore", "certificate", "runtime", "movie ranking"}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	record := []string{
		"The Quiet Harbor", "-2008", "Drama, Mystery", "Alma Reyes",
		"Jonas Veld", "Mira Stone", "", "",
		"A lighthouse keeper uncovers a decades-old secret.",
		"7.8", "74", "PG-13", "118 min", "42",
	}

	m := recordToMovie(record, cols)

	if m.Title != "The Quiet Harbor" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Year != "2008" {
		t.Errorf("Year = %q, want dashes stripped", m.Year)
	}
	if len(m.Actors) != 2 {
		t.Fatalf("Actors = %v, want 2 entries with blanks dropped", m.Actors)
	}
	if m.Actors[0] != "Jonas Veld" || m.Actors[1] != "Mira Stone" {
		t.Errorf("Actors = %v", m.Actors)
	}
	if m.Rank != 42 {
		t.Errorf("Rank = %d, want 42", m.Rank)
	}
	if m.Plot == "" || m.Rating != "7.8" {
		t.Errorf("Plot/Rating not mapped: %+v", m)
	}
}

func TestRecordToMovieShortRecord(t *testing.T) {
	cols := map[string]int{"movie name": 0, "year": 1, "genre": 5}
	record := []string{"Midnight Courier", "2015"}

	m := recordToMovie(record, cols)
	if m.Title != "Midnight Courier" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Genre != "" {
		t.Errorf("Genre = %q, want empty for out-of-range column", m.Genre)
	}
}

func TestRankBounds(t *testing.T) {
	tests := []struct {
		level            int
		wantMin, wantMax int
	}{
		{1, 0, 50},
		{2, 50, 150},
		{3, 150, 1 << 30},
	}
	for _, tt := range tests {
		gotMin, gotMax := rankBounds(tt.level)
		if gotMin != tt.wantMin || gotMax != tt.wantMax {
			t.Errorf("rankBounds(%d) = (%d, %d), want (%d, %d)", tt.level, gotMin, gotMax, tt.wantMin, tt.wantMax)
		}
	}
}
