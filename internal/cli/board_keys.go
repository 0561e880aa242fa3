package cli

import "github.com/charmbracelet/bubbles/key"

type boardKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Grab    key.Binding
	Drop    key.Binding
	Trash   key.Binding
	Cancel  key.Binding
	AddCard key.Binding
	Edit    key.Binding
	AddDay  key.Binding
	Title   key.Binding
	Memo    key.Binding
	Date    key.Binding
	Filter  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "card")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "card")),
		Grab:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "drag")),
		Drop:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space/enter", "drop")),
		Trash:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "over trash")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		AddCard: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add card")),
		Edit:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit card")),
		AddDay:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "add day")),
		Title:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "title")),
		Memo:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "day memo")),
		Date:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day date")),
		Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.AddCard, k.Edit, k.Filter, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Grab, k.Drop, k.Trash, k.Cancel},
		{k.AddCard, k.Edit, k.AddDay, k.Filter},
		{k.Title, k.Memo, k.Date, k.Quit},
	}
}

// dragHelp is shown instead of ShortHelp while a card is picked up.
func (k boardKeyMap) dragHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Trash, k.Drop, k.Cancel}
}
