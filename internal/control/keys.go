package control

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding of the orrery. It implements help.KeyMap.
type KeyMap struct {
	// Controls panel
	SelectUp   key.Binding
	SelectDown key.Binding
	Slower     key.Binding
	Faster     key.Binding
	SlowerBig  key.Binding
	FasterBig  key.Binding
	Pause      key.Binding
	Reset      key.Binding
	Panel      key.Binding

	// View
	FocusNext key.Binding
	FocusPrev key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ZoomReset key.Binding
	ScaleMode key.Binding
	Labels    key.Binding
	Stars     key.Binding
	Center    key.Binding
	PanUp     key.Binding
	PanDown   key.Binding
	PanLeft   key.Binding
	PanRight  key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SelectUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "select planet"),
		),
		SelectDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next planet"),
		),
		Slower: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "speed ±0.01"),
		),
		Faster: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "faster"),
		),
		SlowerBig: key.NewBinding(
			key.WithKeys("shift+left", "<"),
			key.WithHelp("</>", "speed ±0.1"),
		),
		FasterBig: key.NewBinding(
			key.WithKeys("shift+right", ">"),
			key.WithHelp(">", "much faster"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset speeds"),
		),
		Panel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "controls"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("k", "]"),
			key.WithHelp("j/k", "focus"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("j", "["),
			key.WithHelp("j", "focus prev"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "zoom"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		ZoomReset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "zoom 1x"),
		),
		ScaleMode: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "scale"),
		),
		Labels: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "labels"),
		),
		Stars: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "stars"),
		),
		Center: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "center"),
		),
		PanUp: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("wasd", "pan"),
		),
		PanDown: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "pan down"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "pan left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "pan right"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SelectUp, k.Slower, k.Pause, k.FocusNext, k.ZoomIn, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SelectUp, k.Slower, k.SlowerBig, k.Pause, k.Reset, k.Panel},
		{k.FocusNext, k.ZoomIn, k.ZoomReset, k.ScaleMode, k.PanUp, k.Center},
		{k.Labels, k.Stars, k.Help, k.Quit},
	}
}
