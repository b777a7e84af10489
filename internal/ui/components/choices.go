package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"versequest/internal/ui/theme"
)

// Choices is a single-answer option selector. Grading happens outside
// the component, so it only tracks which option is highlighted.
type Choices struct {
	Options  []string
	Selected int
}

// NewChoices creates a selector over the given options.
func NewChoices(options []string) Choices {
	return Choices{Options: options}
}

// Update handles keyboard navigation. Number keys jump straight to an
// option without submitting.
func (c Choices) Update(msg tea.Msg) (Choices, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		if idx < len(c.Options) {
			c.Selected = idx
		}
	}

	return c, nil
}

// Value returns the highlighted option, or "" when there are none.
func (c Choices) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected]
}

// View renders the option list.
func (c Choices) View() string {
	var s string
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)
		if i == c.Selected {
			s += theme.Selected.Render(line) + "\n"
		} else {
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
