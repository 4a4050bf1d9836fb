package quiz

// Points returns the score awarded for a correct answer. It is monotonic in
// both remaining time and difficulty level: a harder question or a faster
// answer never scores less.
func Points(basePoints, timeBonus, difficultyLevel, timeLeft int) int {
	if timeLeft < 0 {
		timeLeft = 0
	}
	return basePoints*difficultyLevel + timeBonus*timeLeft
}

// NextDifficulty applies the streak-based adaptation policy: the level moves
// up after raiseStreak consecutive correct answers, down after dropStreak
// consecutive incorrect or timed-out answers, and stays put otherwise.
// The returned level is always within [minLevel, maxLevel].
func NextDifficulty(level, correctRun, incorrectRun, raiseStreak, dropStreak, minLevel, maxLevel int) int {
	switch {
	case raiseStreak > 0 && correctRun >= raiseStreak && level < maxLevel:
		level++
	case dropStreak > 0 && incorrectRun >= dropStreak && level > minLevel:
		level--
	}
	return clamp(level, minLevel, maxLevel)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
