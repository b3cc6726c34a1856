package components

import "charm.land/bubbles/v2/key"

// KeyMap holds the bindings shared by the list-style components.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	// Pick jumps straight to an option: 1-4 or a-d.
	Pick key.Binding
}

// DefaultKeyMap is used by NewMenu and NewMultiChoice.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "上"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "下"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", "space"),
		key.WithHelp("enter", "确定"),
	),
	Pick: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "a", "b", "c", "d"),
		key.WithHelp("1-4", "选择"),
	),
}

// pickIndex maps a Pick key to an option index.
func pickIndex(k string) int {
	switch k {
	case "1", "a":
		return 0
	case "2", "b":
		return 1
	case "3", "c":
		return 2
	case "4", "d":
		return 3
	}
	return -1
}
