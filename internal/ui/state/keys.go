package state

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Key is the I/O-free form of a key press consumed by Transition. Name uses
// Bubble Tea's key naming ("enter", "ctrl+c", "j"); Text carries the
// printable runes, if any.
type Key struct {
	Name string
	Text string
}

// String makes Key usable with key.Matches.
func (k Key) String() string {
	return k.Name
}

// KeyOf builds a Key with no printable payload.
func KeyOf(name string) Key {
	return Key{Name: name}
}

// RuneKey builds a Key for a printable character.
func RuneKey(r rune) Key {
	if r == ' ' {
		return Key{Name: " ", Text: " "}
	}
	return Key{Name: string(r), Text: string(r)}
}

// KeyFromMsg converts a Bubble Tea key message.
func KeyFromMsg(msg tea.KeyMsg) Key {
	k := Key{Name: msg.String()}
	switch msg.Type {
	case tea.KeySpace:
		k.Text = " "
	case tea.KeyRunes:
		if msg.Alt {
			return k
		}
		k.Text = printable(msg.Runes)
	}
	return k
}

func printable(runes []rune) string {
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if unicode.IsControl(r) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// KeyMap holds every binding the navigation state machine understands.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Help        key.Binding
	TabPRs      key.Binding
	TabActions  key.Binding
	TabLogs     key.Binding
	Refresh     key.Binding
	CreatePR    key.Binding
	Down        key.Binding
	Up          key.Binding
	Left        key.Binding
	Right       key.Binding
	CycleFocus  key.Binding
	CycleBack   key.Binding
	Select      key.Binding
	Back        key.Binding
	Diff        key.Binding
	Approve     key.Binding
	Request     key.Binding
	Comment     key.Binding
	Merge       key.Binding
	Checkout    key.Binding
	Filter      key.Binding
	Rerun       key.Binding
	Logs        key.Binding
	EditTitle   key.Binding
	AddLabel    key.Binding
	AddReviewer key.Binding
	CopyURL     key.Binding
	Search      key.Binding
	PageDown    key.Binding
	PageUp      key.Binding
	Top         key.Binding
	Bottom      key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	LineStart   key.Binding
	NextMatch   key.Binding
	PrevMatch   key.Binding
	Submit      key.Binding
	Cancel      key.Binding
	Backspace   key.Binding
	ClearInput  key.Binding
	DeleteWord  key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		TabPRs:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "pull requests")),
		TabActions:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "actions")),
		TabLogs:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "logs")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		CreatePR:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new pr")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Left:        key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "focus list")),
		Right:       key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "focus right")),
		CycleFocus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
		CycleBack:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous panel")),
		Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Diff:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "diff")),
		Approve:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "approve")),
		Request:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "request changes")),
		Comment:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
		Merge:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "merge")),
		Checkout:    key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "checkout")),
		Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		Rerun:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rerun")),
		Logs:        key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logs")),
		EditTitle:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),
		AddLabel:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add label")),
		AddReviewer: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "add reviewer")),
		CopyURL:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy url")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		ScrollLeft:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "scroll left")),
		ScrollRight: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "scroll right")),
		LineStart:   key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "line start")),
		NextMatch:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		PrevMatch:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "previous match")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Backspace:   key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete")),
		ClearInput:  key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear")),
		DeleteWord:  key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "delete word")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TabPRs, k.TabActions, k.TabLogs, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TabPRs, k.TabActions, k.TabLogs, k.Refresh, k.Help, k.Quit},
		{k.Down, k.Up, k.Left, k.Right, k.CycleFocus, k.Select, k.Back},
		{k.Diff, k.Approve, k.Request, k.Comment, k.Merge, k.Checkout, k.CreatePR},
		{k.Filter, k.Search, k.EditTitle, k.AddLabel, k.AddReviewer, k.CopyURL},
		{k.Rerun, k.Logs, k.PageDown, k.PageUp, k.Top, k.Bottom, k.NextMatch, k.PrevMatch},
	}
}
