// internal/words/words.go
//
// Word list management for the game engine.
//
// Responsibilities:
//   - Load a candidate pool from a configured file or fall back to the
//     embedded default list.
//   - Filter the raw dictionary down to valid five-letter entries
//     (case-insensitive; everything is normalized to uppercase).
//   - Pick a solution uniformly at random.
//
// Constraints:
//   - Candidates are exactly 5 ASCII letters; everything else is dropped
//     during filtering, not rejected with an error.
//   - An empty pool after filtering is fatal (ErrEmptyDictionary); the host
//     must not start a session without words.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/gridle-game/gridle/assets"
)

// ErrEmptyDictionary is returned when filtering yields zero candidates.
var ErrEmptyDictionary = errors.New("words: no five-letter candidates in dictionary")

const wordLen = 5

// Source holds the filtered candidate pool solutions are drawn from.
type Source struct {
	pool []string // uppercase, each exactly wordLen letters
}

// Load builds a Source from the file at path, or from the embedded default
// list when path is empty. Entries that are not exactly five letters are
// filtered out; the comparison is case-insensitive.
func Load(path string) (*Source, error) {
	var raw []string
	var err error
	if path != "" {
		raw, err = readWordFile(path)
	} else {
		raw, err = assets.WordList()
	}
	if err != nil {
		return nil, err
	}
	return New(raw)
}

// New builds a Source from an in-memory dictionary, applying the same
// filtering rules as Load.
func New(dictionary []string) (*Source, error) {
	pool := filter(dictionary)
	if len(pool) == 0 {
		return nil, ErrEmptyDictionary
	}
	return &Source{pool: pool}, nil
}

// PickRandom selects one candidate uniformly at random.
// The returned word is uppercase. The pool is never mutated.
func (s *Source) PickRandom() (string, error) {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(s.pool))))
	if err != nil {
		return "", fmt.Errorf("words: pick random: %w", err)
	}
	return s.pool[nBig.Int64()], nil
}

// Count returns the size of the candidate pool (diagnostics).
func (s *Source) Count() int { return len(s.pool) }

// readWordFile loads one word per line from a file, skipping blank lines
// and #-comments. Filtering to valid candidates happens in filter.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open dictionary: %w", err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read dictionary: %w", err)
	}
	return out, nil
}

// filter keeps exactly the entries that are wordLen ASCII letters,
// normalized to uppercase.
func filter(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.ToUpper(strings.TrimSpace(w))
		if len(w) == wordLen && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
