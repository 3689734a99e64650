package input

import (
	"testing"

	"github.com/gridle-game/gridle/internal/game"
)

func TestFromKeyName(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want Event
		ok   bool
	}{
		{"enter submits", "Enter", Event{Kind: KindSubmit}, true},
		{"backspace deletes", "Backspace", Event{Kind: KindDelete}, true},
		{"lowercase letter", "a", Event{Kind: KindLetter, Letter: 'a'}, true},
		{"uppercase letter", "Q", Event{Kind: KindLetter, Letter: 'Q'}, true},
		{"digit ignored", "7", Event{}, false},
		{"space ignored", " ", Event{}, false},
		{"named key ignored", "Escape", Event{}, false},
		{"modifier ignored", "Shift", Event{}, false},
		{"empty ignored", "", Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromKeyName(tt.key)
			if ok != tt.ok || got != tt.want {
				t.Errorf("FromKeyName(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFromRune(t *testing.T) {
	if _, ok := FromRune('é'); ok {
		t.Error("non-ASCII rune accepted")
	}
	if ev, ok := FromRune('z'); !ok || ev.Letter != 'z' {
		t.Errorf("FromRune('z') = %v, %v", ev, ok)
	}
}

func TestApplyDrivesSession(t *testing.T) {
	s, err := game.New("CRANE")
	if err != nil {
		t.Fatal(err)
	}

	for _, k := range []string{"t", "r", "a", "x", "Backspace", "c", "e", "Enter"} {
		if ev, ok := FromKeyName(k); ok {
			Apply(s, ev)
		}
	}

	if s.Guesses[0] != "TRACE" {
		t.Fatalf("row 0 = %q, want TRACE", s.Guesses[0])
	}
	if s.Row != 1 {
		t.Fatalf("row pointer = %d, want 1", s.Row)
	}

	// An event with an unknown kind is a no-op.
	Apply(s, Event{Kind: Kind("mash")})
	if s.Row != 1 || s.Guesses[1] != "" {
		t.Fatal("unknown event kind mutated session")
	}
}
