package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"versequest/internal/ui/theme"
)

// PairMatch assigns a reference to each verse snippet, one snippet at
// a time. Up/down cycles through the references still unassigned,
// enter locks the choice in, backspace reopens the previous snippet.
type PairMatch struct {
	Snippets   []string
	References []string

	row      int   // snippet currently being assigned
	cursor   int   // highlighted reference index
	assigned []int // per-snippet reference index, -1 while open
	taken    map[int]bool
}

// NewPairMatch creates a matcher for the given snippets and shuffled
// references. Both slices must be the same length.
func NewPairMatch(snippets, references []string) PairMatch {
	assigned := make([]int, len(snippets))
	for i := range assigned {
		assigned[i] = -1
	}
	return PairMatch{
		Snippets:   snippets,
		References: references,
		assigned:   assigned,
		taken:      make(map[int]bool, len(references)),
	}
}

// Update handles assignment navigation.
func (p PairMatch) Update(msg tea.Msg) (PairMatch, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || p.Done() {
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := p.cursor - 1; i >= 0; i-- {
			if !p.taken[i] {
				p.cursor = i
				break
			}
		}
	case "down", "j":
		for i := p.cursor + 1; i < len(p.References); i++ {
			if !p.taken[i] {
				p.cursor = i
				break
			}
		}
	case "enter", "space", " ":
		if p.cursor < len(p.References) && !p.taken[p.cursor] {
			p.assigned[p.row] = p.cursor
			p.taken[p.cursor] = true
			p.row++
			p.seekCursor()
		}
	case "backspace":
		if p.row > 0 {
			p.row--
			prev := p.assigned[p.row]
			p.assigned[p.row] = -1
			delete(p.taken, prev)
			p.cursor = prev
		}
	}

	return p, nil
}

// seekCursor parks the cursor on the first unassigned reference.
func (p *PairMatch) seekCursor() {
	for i := 0; i < len(p.References); i++ {
		if !p.taken[i] {
			p.cursor = i
			return
		}
	}
}

// Done reports whether every snippet has a reference assigned.
func (p PairMatch) Done() bool {
	return p.row >= len(p.Snippets)
}

// Matches returns the assigned reference for each snippet, in snippet
// order. Only meaningful once Done.
func (p PairMatch) Matches() []string {
	out := make([]string, 0, len(p.Snippets))
	for _, idx := range p.assigned {
		if idx < 0 {
			out = append(out, "")
			continue
		}
		out = append(out, p.References[idx])
	}
	return out
}

// View renders the snippet list with assignments and the reference pool.
func (p PairMatch) View() string {
	var b strings.Builder

	for i, sn := range p.Snippets {
		marker := "  "
		if i == p.row && !p.Done() {
			marker = "▸ "
		}
		switch {
		case p.assigned[i] >= 0:
			b.WriteString(theme.Unselected.Render(marker + sn))
			b.WriteString(theme.Selected.Render("  → " + p.References[p.assigned[i]]))
		case i == p.row:
			b.WriteString(theme.Selected.Render(marker + sn))
		default:
			b.WriteString(theme.Unselected.Render(marker + sn))
		}
		b.WriteString("\n")
	}

	if !p.Done() {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Pick the reference:"))
		b.WriteString("\n")
		for i, ref := range p.References {
			switch {
			case p.taken[i]:
				b.WriteString(theme.Used.Render("    " + ref))
			case i == p.cursor:
				b.WriteString(theme.Selected.Render("  ▸ " + ref))
			default:
				b.WriteString(theme.Unselected.Render("    " + ref))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
