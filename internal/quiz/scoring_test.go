package quiz

import "testing"

func TestPoints(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		timeLeft int
		want     int
	}{
		{"level 1, instant answer", 1, 30, 250},
		{"level 1, mid answer", 1, 20, 200},
		{"level 1, last second", 1, 0, 100},
		{"level 2, mid answer", 2, 15, 275},
		{"level 3, instant answer", 3, 30, 450},
		{"level 3, last second", 3, 0, 300},
		{"negative time clamps to zero", 2, -5, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Points(100, 5, tt.level, tt.timeLeft)
			if got != tt.want {
				t.Errorf("Points(100, 5, %d, %d) = %d, want %d", tt.level, tt.timeLeft, got, tt.want)
			}
		})
	}
}

func TestPointsMonotonic(t *testing.T) {
	// More time left never scores less at the same level.
	for level := 1; level <= 3; level++ {
		prev := -1
		for timeLeft := 0; timeLeft <= 30; timeLeft++ {
			p := Points(100, 5, level, timeLeft)
			if p <= prev {
				t.Fatalf("Points not increasing at level=%d timeLeft=%d: %d <= %d", level, timeLeft, p, prev)
			}
			prev = p
		}
	}

	// A harder question never scores less at the same time left.
	for timeLeft := 0; timeLeft <= 30; timeLeft += 5 {
		prev := -1
		for level := 1; level <= 3; level++ {
			p := Points(100, 5, level, timeLeft)
			if p <= prev {
				t.Fatalf("Points not increasing at timeLeft=%d level=%d: %d <= %d", timeLeft, level, p, prev)
			}
			prev = p
		}
	}
}

func TestNextDifficulty(t *testing.T) {
	tests := []struct {
		name                     string
		level                    int
		correctRun, incorrectRun int
		want                     int
	}{
		{"no streak stays put", 2, 1, 0, 2},
		{"raise streak moves up", 1, 2, 0, 2},
		{"raise streak at max stays", 3, 2, 0, 3},
		{"long streak still one step", 1, 5, 0, 2},
		{"drop streak moves down", 2, 0, 2, 1},
		{"drop streak at min stays", 1, 0, 2, 1},
		{"single miss stays put", 3, 0, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDifficulty(tt.level, tt.correctRun, tt.incorrectRun, 2, 2, 1, 3)
			if got != tt.want {
				t.Errorf("NextDifficulty(%d, correct=%d, incorrect=%d) = %d, want %d",
					tt.level, tt.correctRun, tt.incorrectRun, got, tt.want)
			}
		})
	}
}

func TestNextDifficultyAlwaysInRange(t *testing.T) {
	for level := 0; level <= 4; level++ {
		for cr := 0; cr <= 3; cr++ {
			for ir := 0; ir <= 3; ir++ {
				got := NextDifficulty(level, cr, ir, 2, 2, 1, 3)
				if got < 1 || got > 3 {
					t.Fatalf("NextDifficulty(%d, %d, %d) = %d, out of [1,3]", level, cr, ir, got)
				}
			}
		}
	}
}

func TestNextDifficultyDisabledStreaks(t *testing.T) {
	// Zero streak lengths disable adaptation in that direction.
	if got := NextDifficulty(1, 10, 0, 0, 2, 1, 3); got != 1 {
		t.Errorf("raise disabled: got %d, want 1", got)
	}
	if got := NextDifficulty(3, 0, 10, 2, 0, 1, 3); got != 3 {
		t.Errorf("drop disabled: got %d, want 3", got)
	}
}
