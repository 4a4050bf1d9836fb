package quiz

import "errors"

var (
	// ErrInvalidConfig rejects bad start parameters.
	ErrInvalidConfig = errors.New("invalid quiz configuration")

	// ErrSessionNotFound covers unknown, expired, and already-completed sessions.
	ErrSessionNotFound = errors.New("session not found")

	// ErrQuestionMismatch rejects an answer for a question that is not the
	// session's current one (stale or duplicate client state).
	ErrQuestionMismatch = errors.New("question is not the current question")

	// ErrUpstreamUnavailable wraps question-source and persistence failures.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrVersionConflict is returned by session stores when an update lost a
	// race; the engine re-reads and re-validates.
	ErrVersionConflict = errors.New("session version conflict")
)
