// internal/tui/tui.go
//
// Terminal host for the gridle engine.
//
// This is presentation glue only: it owns a tcell screen, translates
// physical key events into the engine's three input kinds, and redraws the
// grid, the on-screen keyboard, and the end-of-game modal after every
// event. All rules live in internal/game.
//
// Keys: letters type, Enter submits, Backspace deletes, Esc / Ctrl-C quits.
// After a game ends, Enter starts a brand-new session (the old one is never
// resumed) and Esc quits.

package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/gridle-game/gridle/internal/game"
	"github.com/gridle-game/gridle/internal/input"
	"github.com/gridle-game/gridle/internal/words"
)

// keyboard rows for the on-screen key-status display.
var keyboardRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

// UI drives one screen and any number of consecutive sessions.
type UI struct {
	screen tcell.Screen
	src    *words.Source
	sess   *game.Session
}

// Run opens the terminal, plays sessions until the player quits, and
// restores the terminal on exit.
func Run(src *words.Source) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tui: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tui: init screen: %w", err)
	}
	defer screen.Fini()

	ui := &UI{screen: screen, src: src}
	if err := ui.newSession(); err != nil {
		return err
	}
	return ui.loop()
}

// newSession replaces the current session with a fresh one.
func (u *UI) newSession() error {
	solution, err := u.src.PickRandom()
	if err != nil {
		return err
	}
	sess, err := game.New(solution)
	if err != nil {
		return err
	}
	u.sess = sess
	return nil
}

// loop processes one input event to completion before the next, redrawing
// after every mutation.
func (u *UI) loop() error {
	for {
		u.draw()
		ev := u.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			quit, err := u.handleKey(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

// handleKey is the physical-key adapter: it reduces a tcell key event to a
// key name and feeds it through the same normalization the synthetic
// adapters use. Unmapped keys fall through as no-ops.
func (u *UI) handleKey(ev *tcell.EventKey) (quit bool, err error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyEnter:
		if u.sess.Terminal() {
			// Modal restart: a brand-new session, never a resume.
			return false, u.newSession()
		}
	}

	if u.sess.Terminal() {
		return false, nil
	}
	if name, ok := keyName(ev); ok {
		if e, ok := input.FromKeyName(name); ok {
			input.Apply(u.sess, e)
		}
	}
	return false, nil
}

// keyName maps a tcell key event to the DOM-style key names the input
// package understands.
func keyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return "Enter", true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace", true
	case tcell.KeyRune:
		return string(ev.Rune()), true
	}
	return "", false
}

// ------------------------------ drawing ------------------------------------

const (
	gridTop  = 2
	cellW    = 4 // "[A] "
	rowPitch = 2
)

func markStyle(m game.Mark) tcell.Style {
	base := tcell.StyleDefault
	switch m {
	case game.MarkHit:
		return base.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	case game.MarkPresent:
		return base.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	case game.MarkMiss:
		return base.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	default:
		return base
	}
}

// draw repaints the whole frame: title, grid, keyboard, and modal.
func (u *UI) draw() {
	u.screen.Clear()
	w, _ := u.screen.Size()

	u.text((w-6)/2, 0, "GRIDLE", tcell.StyleDefault.Bold(true))

	gridW := game.Cols * cellW
	left := (w - gridW) / 2
	for r := 0; r < game.Rows; r++ {
		y := gridTop + r*rowPitch
		row := u.sess.Guesses[r]
		for c := 0; c < game.Cols; c++ {
			x := left + c*cellW
			ch := ' '
			if c < len(row) {
				ch = rune(row[c])
			}
			style := markStyle(u.sess.Marks[r][c])
			u.text(x, y, "[", tcell.StyleDefault)
			u.screen.SetContent(x+1, y, ch, nil, style)
			u.text(x+2, y, "]", tcell.StyleDefault)
		}
	}

	u.drawKeyboard(w, gridTop+game.Rows*rowPitch+1)

	if u.sess.Terminal() {
		u.drawModal(w, gridTop+game.Rows*rowPitch+6)
	}

	u.screen.Show()
}

// drawKeyboard paints the QWERTY layout colored by best-seen key status.
func (u *UI) drawKeyboard(w, top int) {
	for i, row := range keyboardRows {
		x := (w - len(row)*2) / 2
		for _, k := range row {
			style := markStyle(u.sess.Keys[string(k)])
			u.screen.SetContent(x, top+i, k, nil, style)
			x += 2
		}
	}
}

// drawModal paints the win/loss banner with restart instructions.
func (u *UI) drawModal(w, top int) {
	var msg string
	if u.sess.State == game.StateWon {
		msg = "You won!"
	} else {
		msg = "You lost! The word was " + u.sess.Solution
	}
	u.text((w-len(msg))/2, top, msg, tcell.StyleDefault.Bold(true))

	hint := "Enter: new game   Esc: quit"
	u.text((w-len(hint))/2, top+1, hint, tcell.StyleDefault.Dim(true))
}

// text renders a string left to right starting at (x, y).
func (u *UI) text(x, y int, s string, style tcell.Style) {
	for i, ch := range s {
		u.screen.SetContent(x+i, y, ch, nil, style)
	}
}
