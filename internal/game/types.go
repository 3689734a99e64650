// internal/game/types.go
//
// Core type definitions for the gridle game engine.
// Defines:
//   - Mark: per-letter result of a submitted guess (hit/present/miss).
//   - State: coarse session state (playing/won/lost).
//   - Session: all state for a single in-progress or finished game.

package game

import "errors"

// Mark represents the evaluation result for a single cell of the grid.
// Possible values:
//   - "unknown": the cell's row has not been submitted yet.
//   - "hit":     letter is correct and in the correct position.
//   - "present": letter exists in the solution but in a different position.
//   - "miss":    letter does not exist in the solution at all.
type Mark string

const (
	MarkUnknown Mark = "unknown"
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// State is the coarse lifecycle state of a session.
// Won and Lost are terminal: every mutating operation becomes a no-op.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

const (
	// Rows is the number of guesses a player gets.
	Rows = 6
	// Cols is the word length.
	Cols = 5
)

// ErrInvalidSolution is returned by New when the supplied solution is not
// exactly five A-Z letters. This indicates a caller bug, not player input.
var ErrInvalidSolution = errors.New("game: solution must be exactly 5 letters")

// Session holds the complete state of one game. It is created by New and
// mutated only through AppendLetter, DeleteLetter and SubmitGuess. Once the
// state is won or lost the session never changes again.
type Session struct {
	ID       string           `json:"id"`
	Solution string           `json:"solution"` // always uppercase, len 5
	Guesses  [Rows]string     `json:"guesses"`  // row r is mutable only while r == Row
	Marks    [Rows][Cols]Mark `json:"marks"`    // written once, when row r is submitted
	Keys     map[string]Mark  `json:"keys"`     // best status seen per letter A-Z
	Row      int              `json:"row"`      // active row, 0..Rows-1
	State    State            `json:"state"`
}

// Terminal reports whether the session has finished (won or lost).
func (s *Session) Terminal() bool {
	return s.State != StatePlaying
}
