// internal/input/input.go
//
// Input event normalization for the game engine.
//
// Every input source — physical key events in the terminal host, synthetic
// JSON events from the HTTP host — is reduced to the same three event kinds
// before it reaches the engine: letter, submit, delete. The engine never
// sees where an event came from.
//
// Anything that does not map to one of the three kinds is dropped, not
// rejected: unknown keys are a no-op by contract.

package input

import "github.com/gridle-game/gridle/internal/game"

// Kind discriminates the three input event variants.
type Kind string

const (
	KindLetter Kind = "letter"
	KindSubmit Kind = "submit"
	KindDelete Kind = "delete"
)

// Event is one normalized player input.
// Letter is only meaningful when Kind == KindLetter.
type Event struct {
	Kind   Kind
	Letter rune
}

// FromKeyName maps a DOM-style key name to an Event.
// "Enter" submits, "Backspace" deletes, and any single ASCII letter types
// itself. Everything else reports ok=false and should be ignored.
func FromKeyName(key string) (Event, bool) {
	switch key {
	case "Enter":
		return Event{Kind: KindSubmit}, true
	case "Backspace":
		return Event{Kind: KindDelete}, true
	}
	if len(key) == 1 {
		return FromRune(rune(key[0]))
	}
	return Event{}, false
}

// FromRune maps a single typed rune to a letter Event.
// Only ASCII letters qualify; case is preserved (the engine upcases).
func FromRune(r rune) (Event, bool) {
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return Event{Kind: KindLetter, Letter: r}, true
	}
	return Event{}, false
}

// Apply dispatches one event to the session. Unknown kinds are a no-op,
// matching the engine's forgiving contract for malformed input.
func Apply(s *game.Session, ev Event) {
	switch ev.Kind {
	case KindLetter:
		s.AppendLetter(ev.Letter)
	case KindSubmit:
		s.SubmitGuess()
	case KindDelete:
		s.DeleteLetter()
	}
}
