package game

import "testing"

// enter types every letter of w and submits the row.
func enter(t *testing.T, s *Session, w string) {
	t.Helper()
	for _, r := range w {
		s.AppendLetter(r)
	}
	s.SubmitGuess()
}

func mustNew(t *testing.T, solution string) *Session {
	t.Helper()
	s, err := New(solution)
	if err != nil {
		t.Fatalf("New(%q): %v", solution, err)
	}
	return s
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		solution string
		wantErr  bool
	}{
		{"valid uppercase", "CRANE", false},
		{"valid lowercase", "crane", false},
		{"valid padded", "  crane ", false},
		{"too short", "CRAN", true},
		{"too long", "CRANES", true},
		{"empty", "", true},
		{"digits", "CR4NE", true},
		{"punctuation", "CRAN!", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.solution)
			if tt.wantErr {
				if err != ErrInvalidSolution {
					t.Fatalf("expected ErrInvalidSolution, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Solution != "CRANE" {
				t.Errorf("solution not normalized: %q", s.Solution)
			}
			if s.Row != 0 || s.State != StatePlaying {
				t.Errorf("fresh session not at row 0 playing: row=%d state=%s", s.Row, s.State)
			}
			for r := 0; r < Rows; r++ {
				for c := 0; c < Cols; c++ {
					if s.Marks[r][c] != MarkUnknown {
						t.Fatalf("cell (%d,%d) not unknown", r, c)
					}
				}
			}
		})
	}
}

func TestScoreGuess(t *testing.T) {
	tests := []struct {
		name     string
		solution string
		guess    string
		want     [Cols]Mark
	}{
		{
			"all hits", "CRANE", "CRANE",
			[Cols]Mark{MarkHit, MarkHit, MarkHit, MarkHit, MarkHit},
		},
		{
			"all misses", "CRANE", "JUMPY",
			[Cols]Mark{MarkMiss, MarkMiss, MarkMiss, MarkMiss, MarkMiss},
		},
		{
			"mixed with duplicates", "CRANE", "TRACE",
			[Cols]Mark{MarkMiss, MarkHit, MarkHit, MarkPresent, MarkHit},
		},
		{
			"guess repeats beyond solution count", "ABBEY", "BOBBY",
			[Cols]Mark{MarkPresent, MarkMiss, MarkHit, MarkMiss, MarkHit},
		},
		{
			"single hit", "CRANE", "POINT",
			[Cols]Mark{MarkMiss, MarkMiss, MarkMiss, MarkHit, MarkMiss},
		},
		{
			"double letter guess single in solution", "SHINE", "SEEDS",
			[Cols]Mark{MarkHit, MarkPresent, MarkMiss, MarkMiss, MarkMiss},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreGuess(tt.solution, tt.guess)
			if got != tt.want {
				t.Errorf("scoreGuess(%q, %q) = %v, want %v", tt.solution, tt.guess, got, tt.want)
			}
		})
	}
}

// Count of hit+present for any letter never exceeds its count in the solution.
func TestScoreGuessCreditBound(t *testing.T) {
	pairs := []struct{ solution, guess string }{
		{"ABBEY", "BOBBY"},
		{"ABBEY", "BBBBB"},
		{"CRANE", "EERIE"},
		{"LEVEL", "ELLEN"},
	}
	for _, p := range pairs {
		marks := scoreGuess(p.solution, p.guess)
		var inSol, credited [26]int
		for i := 0; i < Cols; i++ {
			inSol[p.solution[i]-'A']++
			if marks[i] == MarkHit || marks[i] == MarkPresent {
				credited[p.guess[i]-'A']++
			}
		}
		for l := 0; l < 26; l++ {
			if credited[l] > inSol[l] {
				t.Errorf("%q vs %q: letter %c credited %d times, solution has %d",
					p.guess, p.solution, 'A'+l, credited[l], inSol[l])
			}
		}
	}
}

func TestAppendLetter(t *testing.T) {
	s := mustNew(t, "CRANE")

	s.AppendLetter('t')
	s.AppendLetter('R')
	if s.Guesses[0] != "TR" {
		t.Fatalf("row = %q, want TR", s.Guesses[0])
	}

	// Non-letters are ignored.
	for _, r := range []rune{'1', ' ', '!', 'é', '\n'} {
		s.AppendLetter(r)
	}
	if s.Guesses[0] != "TR" {
		t.Fatalf("row changed on non-letter input: %q", s.Guesses[0])
	}

	// A full row absorbs further letters.
	s.AppendLetter('A')
	s.AppendLetter('C')
	s.AppendLetter('E')
	s.AppendLetter('X')
	if s.Guesses[0] != "TRACE" {
		t.Fatalf("row = %q, want TRACE", s.Guesses[0])
	}
}

func TestDeleteLetter(t *testing.T) {
	s := mustNew(t, "CRANE")

	// Deleting from an empty row is a no-op.
	s.DeleteLetter()
	if s.Guesses[0] != "" {
		t.Fatalf("row = %q, want empty", s.Guesses[0])
	}

	s.AppendLetter('A')
	s.AppendLetter('B')
	s.DeleteLetter()
	if s.Guesses[0] != "A" {
		t.Fatalf("row = %q, want A", s.Guesses[0])
	}
}

func TestSubmitShortRowIsNoop(t *testing.T) {
	s := mustNew(t, "CRANE")
	s.AppendLetter('C')
	s.AppendLetter('R')
	s.SubmitGuess()
	if s.Row != 0 || s.State != StatePlaying {
		t.Fatalf("short submit mutated session: row=%d state=%s", s.Row, s.State)
	}
	if s.Marks[0][0] != MarkUnknown {
		t.Fatal("short submit wrote marks")
	}
}

func TestWinAtAnyRow(t *testing.T) {
	for winRow := 0; winRow < Rows; winRow++ {
		s := mustNew(t, "CRANE")
		for r := 0; r < winRow; r++ {
			enter(t, s, "POINT")
		}
		enter(t, s, "CRANE")
		if s.State != StateWon {
			t.Fatalf("win at row %d: state=%s", winRow, s.State)
		}
		if s.Row != winRow {
			t.Fatalf("win at row %d: row pointer advanced to %d", winRow, s.Row)
		}
	}
}

func TestLossAfterSixMisses(t *testing.T) {
	s := mustNew(t, "CRANE")
	for r := 0; r < Rows; r++ {
		enter(t, s, "POINT")
	}
	if s.State != StateLost {
		t.Fatalf("state = %s, want lost", s.State)
	}
	// The pointer stays on the last row; there is no seventh row.
	if s.Row != Rows-1 {
		t.Fatalf("row = %d, want %d", s.Row, Rows-1)
	}
}

func TestTerminalSessionIsFrozen(t *testing.T) {
	s := mustNew(t, "CRANE")
	enter(t, s, "CRANE")
	if s.State != StateWon {
		t.Fatalf("state = %s, want won", s.State)
	}

	before := *s
	s.AppendLetter('X')
	s.DeleteLetter()
	s.SubmitGuess()

	if s.Guesses != before.Guesses || s.Marks != before.Marks ||
		s.Row != before.Row || s.State != before.State {
		t.Fatal("terminal session mutated by engine operations")
	}
}

func TestRowPointerMonotonic(t *testing.T) {
	s := mustNew(t, "CRANE")
	prev := s.Row
	for i := 0; i < 4; i++ {
		enter(t, s, "POINT")
		if s.Row < prev {
			t.Fatalf("row pointer went backwards: %d -> %d", prev, s.Row)
		}
		if s.Row != prev+1 {
			t.Fatalf("row pointer advanced by %d, want 1", s.Row-prev)
		}
		prev = s.Row
	}
}

func TestRowMarksFrozenOnce(t *testing.T) {
	s := mustNew(t, "CRANE")
	enter(t, s, "TRACE")
	frozen := s.Marks[0]
	enter(t, s, "CRANE")
	if s.Marks[0] != frozen {
		t.Fatal("submitted row's marks changed after a later submit")
	}
}

func TestKeyStatusPriority(t *testing.T) {
	s := mustNew(t, "CRANE")

	// C scores present at position 3 of TRACE.
	enter(t, s, "TRACE")
	if got := s.Keys["C"]; got != MarkPresent {
		t.Fatalf(`Keys["C"] = %s, want present`, got)
	}
	if got := s.Keys["T"]; got != MarkMiss {
		t.Fatalf(`Keys["T"] = %s, want miss`, got)
	}

	// C scores hit at position 0; the key upgrades.
	enter(t, s, "CRAZY")
	if got := s.Keys["C"]; got != MarkHit {
		t.Fatalf(`Keys["C"] = %s, want hit`, got)
	}

	// A later present for C must not demote the key from hit.
	enter(t, s, "MACHO")
	if got := s.Keys["C"]; got != MarkHit {
		t.Fatalf(`Keys["C"] demoted to %s after later rows`, got)
	}
}
