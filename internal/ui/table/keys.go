package table

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/imgajeed76/vgrid/internal/grid"
)

type gridKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	RowStart    key.Binding
	RowEnd      key.Binding
	Sort        key.Binding
	SortMulti   key.Binding
	Wider       key.Binding
	Narrower    key.Binding
	MoveLeft    key.Binding
	MoveRight   key.Binding
	Pin         key.Binding
	Hide        key.Binding
	ShowAll     key.Binding
	Select      key.Binding
	SelectAll   key.Binding
	Deselect    key.Binding
	Edit        key.Binding
	Quit        key.Binding
	ExportJSON  key.Binding
	ExportRaw   key.Binding
	ExportPlain key.Binding
}

var gridKeys = gridKeyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
	PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Home:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
	End:         key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
	RowStart:    key.NewBinding(key.WithKeys("0", "^"), key.WithHelp("0", "first column")),
	RowEnd:      key.NewBinding(key.WithKeys("$"), key.WithHelp("$", "last column")),
	Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	SortMulti:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "add sort key")),
	Wider:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "wider")),
	Narrower:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "narrower")),
	MoveLeft:    key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "move left")),
	MoveRight:   key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "move right")),
	Pin:         key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin")),
	Hide:        key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "hide column")),
	ShowAll:     key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "show all")),
	Select:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	SelectAll:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("^a", "select all")),
	Deselect:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
	Edit:        key.NewBinding(key.WithKeys("enter", "e", "f2"), key.WithHelp("e", "edit")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	ExportJSON:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "print as JSON")),
	ExportRaw:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "print raw")),
	ExportPlain: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "print table")),
}

// navIntents decodes navigation keys into store intents
var navIntents = []struct {
	binding *key.Binding
	intent  grid.Intent
}{
	{&gridKeys.Up, grid.NavUp},
	{&gridKeys.Down, grid.NavDown},
	{&gridKeys.Left, grid.NavLeft},
	{&gridKeys.Right, grid.NavRight},
	{&gridKeys.PageUp, grid.NavPageUp},
	{&gridKeys.PageDown, grid.NavPageDown},
	{&gridKeys.Home, grid.NavHome},
	{&gridKeys.End, grid.NavEnd},
	{&gridKeys.RowStart, grid.NavRowStart},
	{&gridKeys.RowEnd, grid.NavRowEnd},
}

func helpPairs(bindings ...key.Binding) []string {
	pairs := make([]string, 0, len(bindings)*2)
	for _, b := range bindings {
		h := b.Help()
		pairs = append(pairs, h.Key, h.Desc)
	}
	return pairs
}
