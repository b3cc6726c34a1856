package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/abhisek/hanziquiz/internal/ui/theme"
)

// OptionLabels are the letters shown in front of each option.
var OptionLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a four-option selector. It only tracks the cursor and the
// submission; deciding correctness is left to the caller.
type MultiChoice struct {
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
	Keys         KeyMap
}

// NewMultiChoice creates a selector over options. correctIndex is only used
// to colour the options once the answer is revealed.
func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
		Keys:         DefaultKeyMap,
	}
}

// Update moves the cursor. It reports true once an option is chosen, either
// with Select or by pressing its number or letter.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	if m.Submitted {
		return m, false
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, false
	}

	switch {
	case key.Matches(kmsg, m.Keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(kmsg, m.Keys.Down):
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case key.Matches(kmsg, m.Keys.Pick):
		i := pickIndex(kmsg.String())
		if i < 0 || i >= len(m.Options) {
			return m, false
		}
		m.Selected = i
		return m.submit(), true
	case key.Matches(kmsg, m.Keys.Select):
		if len(m.Options) == 0 {
			return m, false
		}
		return m.submit(), true
	}
	return m, false
}

func (m MultiChoice) submit() MultiChoice {
	m.Submitted = true
	m.ChosenIndex = m.Selected
	return m
}

// View renders the options. Labels are padded to the widest option so the
// column stays aligned for both hanzi and pinyin.
func (m MultiChoice) View() string {
	width := 0
	for _, opt := range m.Options {
		width = max(width, runewidth.StringWidth(opt))
	}

	var b strings.Builder
	for i, opt := range m.Options {
		label := "?"
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s.  %s", prefix, label, runewidth.FillRight(opt, width))

		switch {
		case m.Submitted && i == m.CorrectIndex:
			line = theme.Correct.Render(line + "  ✓")
		case m.Submitted && i == m.ChosenIndex:
			line = theme.Incorrect.Render(line + "  ✗")
		case m.Submitted:
			line = theme.Muted.Render(line)
		case i == m.Selected:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// IsCorrect returns true if the chosen option is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
