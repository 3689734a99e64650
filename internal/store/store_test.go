package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gridle-game/gridle/internal/game"
)

// runStoreTests exercises the Store contract against any implementation.
func runStoreTests(t *testing.T, st Store) {
	ctx := context.Background()

	if _, err := st.Get(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}

	sess, err := game.New("CRANE")
	if err != nil {
		t.Fatal(err)
	}
	sess.AppendLetter('T')

	if err := st.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != sess.ID || got.Solution != "CRANE" || got.Guesses[0] != "T" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}

	// Saving again overwrites.
	got.AppendLetter('R')
	if err := st.Save(ctx, got); err != nil {
		t.Fatalf("Save (update): %v", err)
	}
	again, err := st.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get (update): %v", err)
	}
	if again.Guesses[0] != "TR" {
		t.Fatalf("update not persisted: row = %q", again.Guesses[0])
	}

	if err := st.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get(ctx, sess.ID); err != ErrNotFound {
		t.Fatalf("Get after Delete err = %v, want ErrNotFound", err)
	}
	// Deleting a missing session is not an error.
	if err := st.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete (missing): %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "gridle.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	runStoreTests(t, st)
}

func TestSQLiteStorePreservesMarks(t *testing.T) {
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "gridle.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	ctx := context.Background()

	sess, err := game.New("CRANE")
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range "TRACE" {
		sess.AppendLetter(r)
	}
	sess.SubmitGuess()

	if err := st.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Marks[0] != sess.Marks[0] {
		t.Fatalf("marks not preserved: %v vs %v", got.Marks[0], sess.Marks[0])
	}
	if got.Keys["R"] != game.MarkHit {
		t.Fatalf(`Keys["R"] = %s, want hit`, got.Keys["R"])
	}
	if got.Row != 1 {
		t.Fatalf("row = %d, want 1", got.Row)
	}
}
