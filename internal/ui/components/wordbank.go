package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"versequest/internal/ui/theme"
)

// WordBank lets the user fill a fixed number of blanks by picking
// words from a shuffled pool, in order. Backspace undoes the last pick.
type WordBank struct {
	Words  []string // the pool, display order
	Blanks int      // how many picks are required

	Cursor int
	picks  []int // indices into Words, in pick order
	used   map[int]bool
}

// NewWordBank creates a word bank over the given pool.
func NewWordBank(words []string, blanks int) WordBank {
	return WordBank{
		Words:  words,
		Blanks: blanks,
		used:   make(map[int]bool, len(words)),
	}
}

// Update handles pool navigation, picking and undo.
func (w WordBank) Update(msg tea.Msg) (WordBank, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, nil
	}

	switch kmsg.String() {
	case "left", "h", "up", "k":
		for i := w.Cursor - 1; i >= 0; i-- {
			if !w.used[i] {
				w.Cursor = i
				break
			}
		}
	case "right", "l", "down", "j", "tab":
		for i := w.Cursor + 1; i < len(w.Words); i++ {
			if !w.used[i] {
				w.Cursor = i
				break
			}
		}
	case "space", " ", "enter":
		if len(w.picks) < w.Blanks && w.Cursor < len(w.Words) && !w.used[w.Cursor] {
			w.picks = append(w.picks, w.Cursor)
			w.used[w.Cursor] = true
			w.advanceCursor()
		}
	case "backspace":
		if len(w.picks) > 0 {
			last := w.picks[len(w.picks)-1]
			w.picks = w.picks[:len(w.picks)-1]
			delete(w.used, last)
			w.Cursor = last
		}
	}

	return w, nil
}

// advanceCursor moves the cursor to the next unused word, wrapping to
// the start when the tail of the pool is exhausted.
func (w *WordBank) advanceCursor() {
	for i := w.Cursor + 1; i < len(w.Words); i++ {
		if !w.used[i] {
			w.Cursor = i
			return
		}
	}
	for i := 0; i < len(w.Words); i++ {
		if !w.used[i] {
			w.Cursor = i
			return
		}
	}
}

// Done reports whether every blank has been filled.
func (w WordBank) Done() bool {
	return len(w.picks) == w.Blanks
}

// Answer returns the picked words in pick order.
func (w WordBank) Answer() []string {
	out := make([]string, 0, len(w.picks))
	for _, idx := range w.picks {
		out = append(out, w.Words[idx])
	}
	return out
}

// Reset clears all picks so the blanks can be refilled.
func (w *WordBank) Reset() {
	w.picks = nil
	w.used = make(map[int]bool, len(w.Words))
	w.Cursor = 0
}

// View renders the filled slots and the word pool.
func (w WordBank) View() string {
	var b strings.Builder

	slots := make([]string, 0, w.Blanks)
	for i := 0; i < w.Blanks; i++ {
		if i < len(w.picks) {
			slots = append(slots, theme.Selected.Render(w.Words[w.picks[i]]))
		} else {
			slots = append(slots, theme.Blank.Render("____"))
		}
	}
	b.WriteString(theme.Body.Render("Blanks: "))
	b.WriteString(strings.Join(slots, theme.Hint.Render(" · ")))
	b.WriteString("\n\n")

	for i, word := range w.Words {
		switch {
		case w.used[i]:
			b.WriteString(theme.Used.Render(word))
		case i == w.Cursor:
			b.WriteString(theme.Selected.Render("[" + word + "]"))
		default:
			b.WriteString(theme.Unselected.Render(" " + word + " "))
		}
		b.WriteString("  ")
	}

	return b.String()
}
