package generator

import (
	"fmt"
	"strings"

	"github.com/reel-trivia/backend/internal/models"
)

var difficultyWords = map[int]string{1: "easy", 2: "medium", 3: "hard"}

// genreFocusAreas steers the model toward genre-specific question angles
// instead of generic release-year trivia.
var genreFocusAreas = map[string]string{
	"Action": `- High-octane sequences, stunts, and choreography
- Action heroes, villains, and their motivations
- Franchise connections and action movie tropes`,

	"Drama": `- Character development and emotional arcs
- Social issues, family dynamics, and relationships
- Dramatic performances and award recognition`,

	"Comedy": `- Comedic timing, humor styles, and funny scenes
- Comic actors and their signature roles
- Memorable quotes and comedic situations`,

	"Horror": `- Scare techniques, suspense building, and fear elements
- Horror sub-genres (slasher, psychological, supernatural)
- Iconic horror scenes and monsters`,

	"Thriller": `- Suspense building and tension creation
- Plot twists, mysteries, and reveals
- Cat-and-mouse dynamics and conspiracy elements`,

	"Romance": `- Love stories, relationship dynamics, and chemistry
- Romantic leads and their on-screen partnerships
- Heartbreak, passion, and emotional moments`,

	"Sci-Fi": `- Futuristic concepts, technology, and scientific themes
- Space travel, aliens, and otherworldly elements
- Special effects and visual innovation`,

	"Fantasy": `- Magical elements, mythical creatures, and supernatural powers
- World-building, fictional realms, and fantasy races
- Quests, prophecies, and hero's journey narratives`,

	"Crime": `- Criminal activities, heists, and law enforcement
- Detective work, investigations, and criminal masterminds
- Moral ambiguity and crime consequences`,

	"Western": `- Old West settings, frontier life, and cowboy culture
- Outlaws, sheriffs, and justice themes
- Desert landscapes and small town dynamics`,

	"War": `- Military tactics, battles, and historical conflicts
- Soldier experiences, camaraderie, and sacrifice
- Anti-war messages and heroism themes`,

	"Animation": `- Animation techniques and visual styles
- Voice acting and character performances
- Studio signatures and technical innovation`,
}

func focusAreasFor(genre string) string {
	if focus, ok := genreFocusAreas[genre]; ok {
		return focus
	}
	return `- Genre-specific themes and conventions
- Typical character archetypes for this genre
- Common plot devices and storytelling techniques`
}

// SystemPrompt defines the generator persona and the strict JSON contract.
func SystemPrompt() string {
	return `You are an expert movie trivia question writer. You produce multiple-choice questions grounded strictly in the movie information you are given.

Respond with ONLY a JSON object in this exact shape, no markdown fences, no commentary:
{"questions":[{"question":"...","options":["...","...","...","..."],"answer_index":0,"difficulty":"easy|medium|hard"}]}

Rules:
- Exactly 4 options per question, exactly one correct.
- answer_index is the 0-based index of the correct option.
- Every question must name the movie it is about.
- Wrong options must be plausible for the genre and era.`
}

// BuildBatchPrompt asks for one question per movie, in order, with
// genre-focused angles and a difficulty target.
func BuildBatchPrompt(selected []models.Movie, level int) string {
	difficulty := difficultyWords[level]
	if difficulty == "" {
		difficulty = "medium"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create exactly %d %s multiple-choice movie trivia questions, one per movie below, in the same order.\n\n", len(selected), difficulty)

	for i, m := range selected {
		primary := m.PrimaryGenre()
		fmt.Fprintf(&b, "Movie %d:\n", i+1)
		fmt.Fprintf(&b, "Title: %s\nYear: %s\nGenre: %s (primary: %s)\nDirector: %s\nMain Cast: %s\n",
			m.Title, m.Year, m.Genre, primary, m.Director, strings.Join(m.Actors, ", "))
		if m.Plot != "" {
			fmt.Fprintf(&b, "Plot: %s\n", m.Plot)
		}
		fmt.Fprintf(&b, "Rating: %s/10  |  Metascore: %s\n", m.Rating, m.Metascore)
		fmt.Fprintf(&b, "Focus areas for %s:\n%s\n\n", primary, focusAreasFor(primary))
	}

	fmt.Fprintf(&b, `Difficulty guidelines:
- easy: basic facts (release year, director, lead roles, main themes)
- medium: specific genre elements, character archetypes, plot devices
- hard: deep genre knowledge (influences, directorial style, cultural impact)

Target difficulty: %s. Each question must name its movie.`, difficulty)

	return b.String()
}
