// internal/game/engine.go
//
// Core game engine for a single gridle session.
// Responsibilities:
//   - Create new sessions with deterministic dimensions (6x5).
//   - Apply per-letter edits to the active row (append/delete).
//   - Score submitted rows using the classic two-pass algorithm.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Solutions are provided by the words package (or fixed by a caller).
//   - Mark is an enum defined in this package (MarkHit/MarkPresent/MarkMiss).
//   - randomID() is a compact hex identifier for correlating host state.
//
// All mutating operations are total: on a terminal session, or on input that
// is not applicable to the current row, they simply do nothing. Malformed
// player input is never an error.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// New constructs a new session around the given solution.
// The solution may arrive in any case; it is stored uppercase.
// Returns ErrInvalidSolution unless it is exactly Cols A-Z letters.
func New(solution string) (*Session, error) {
	sol := strings.ToUpper(strings.TrimSpace(solution))
	if len(sol) != Cols || !isUpperAlpha(sol) {
		return nil, ErrInvalidSolution
	}
	s := &Session{
		ID:       randomID(),
		Solution: sol,
		Keys:     make(map[string]Mark),
		State:    StatePlaying,
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			s.Marks[r][c] = MarkUnknown
		}
	}
	return s, nil
}

// AppendLetter adds one letter to the active row.
// No-op if the session is terminal, the row already holds Cols letters,
// or r is not a single ASCII letter. Lowercase input is upcased.
func (s *Session) AppendLetter(r rune) {
	if s.Terminal() || len(s.Guesses[s.Row]) >= Cols {
		return
	}
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r < 'A' || r > 'Z' {
		return
	}
	s.Guesses[s.Row] += string(r)
}

// DeleteLetter removes the last letter of the active row.
// No-op if the session is terminal or the row is empty.
func (s *Session) DeleteLetter() {
	if s.Terminal() || len(s.Guesses[s.Row]) == 0 {
		return
	}
	row := s.Guesses[s.Row]
	s.Guesses[s.Row] = row[:len(row)-1]
}

// SubmitGuess scores the active row against the solution.
// No-op if the session is terminal or the row holds fewer than Cols letters.
//
// On a valid submit:
//  1. The row's marks are computed and frozen into the grid.
//  2. Key statuses are upgraded (hit > present > miss, never downgraded).
//  3. A full match wins; a miss on the last row loses; otherwise the
//     active row advances by one.
func (s *Session) SubmitGuess() {
	if s.Terminal() || len(s.Guesses[s.Row]) < Cols {
		return
	}
	guess := s.Guesses[s.Row]
	marks := scoreGuess(s.Solution, guess)
	for c := 0; c < Cols; c++ {
		s.Marks[s.Row][c] = marks[c]
		s.upgradeKey(guess[c], marks[c])
	}

	switch {
	case guess == s.Solution:
		s.State = StateWon
	case s.Row == Rows-1:
		s.State = StateLost
	default:
		s.Row++
	}
}

// upgradeKey records the best status ever seen for a letter.
// A key already at hit stays hit; present is never demoted to miss.
func (s *Session) upgradeKey(letter byte, m Mark) {
	k := string(letter)
	if markRank(m) > markRank(s.Keys[k]) {
		s.Keys[k] = m
	}
}

// markRank orders marks for key-status upgrades. An absent map entry
// yields the zero Mark, which ranks below everything.
func markRank(m Mark) int {
	switch m {
	case MarkHit:
		return 3
	case MarkPresent:
		return 2
	case MarkMiss:
		return 1
	default:
		return 0
	}
}

// scoreGuess implements the standard two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count remaining (non-hit) solution letters by letter index.
//
// Pass 2:
//   - For each non-hit guess letter: if there is remaining count for that
//     letter, mark Present and decrement the count; otherwise mark Miss.
//
// This ensures correct behavior with repeated letters in both solution and
// guess: a letter is never credited more times than it occurs.
func scoreGuess(solution, guess string) [Cols]Mark {
	var res [Cols]Mark

	// Letter frequency for the non-hit positions (A-Z).
	var counts [26]int

	// First pass: mark hits and collect counts for remaining solution letters.
	for i := 0; i < Cols; i++ {
		if guess[i] == solution[i] {
			res[i] = MarkHit
		} else {
			counts[idx(solution[i])]++
		}
	}

	// Second pass: resolve presents/misses for non-hit cells.
	for i := 0; i < Cols; i++ {
		if res[i] == MarkHit {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}

// idx maps an uppercase ASCII letter byte to 0..25.
// Assumes inputs are validated to A-Z elsewhere.
func idx(b byte) int { return int(b - 'A') }

// isUpperAlpha checks that a string consists only of uppercase A-Z.
func isUpperAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
