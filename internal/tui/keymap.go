package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
)

// keyMap represents key map data used by this package.
type keyMap struct {
	quit        key.Binding
	reload      key.Binding
	toggleHelp  key.Binding
	scrollLeft  key.Binding
	scrollRight key.Binding
	rowUp       key.Binding
	rowDown     key.Binding
	pageEarlier key.Binding
	pageLater   key.Binding
	today       key.Binding
	jumpTask    key.Binding
	newTask     key.Binding
	taskInfo    key.Binding
	moveColumn  key.Binding
	deleteTask  key.Binding
	undoDelete  key.Binding
	yankTicket  key.Binding
	cancel      key.Binding
}

// KeyOverrides remaps the single-key bindings a user is most likely to
// customize. Empty fields keep the default.
type KeyOverrides struct {
	Today       string
	PageEarlier string
	PageLater   string
	NewTask     string
	Delete      string
	Yank        string
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		toggleHelp:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		scrollLeft:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "day earlier")),
		scrollRight: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "day later")),
		rowUp:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "task up")),
		rowDown:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "task down")),
		pageEarlier: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "page earlier")),
		pageLater:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "page later")),
		today:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "jump to today")),
		jumpTask:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "jump to task")),
		newTask:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		taskInfo:    key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i/enter", "task info")),
		moveColumn:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move to next column")),
		deleteTask:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete task")),
		undoDelete:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "restore archived")),
		yankTicket:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank ticket")),
		cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// apply rebinds the overridable keys, keeping defaults for blank entries.
func (k keyMap) apply(o KeyOverrides) keyMap {
	rebind := func(b key.Binding, keys, help string) key.Binding {
		keys = strings.TrimSpace(keys)
		if keys == "" {
			return b
		}
		return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, help))
	}
	k.today = rebind(k.today, o.Today, "jump to today")
	k.pageEarlier = rebind(k.pageEarlier, o.PageEarlier, "page earlier")
	k.pageLater = rebind(k.pageLater, o.PageLater, "page later")
	k.newTask = rebind(k.newTask, o.NewTask, "new task")
	k.deleteTask = rebind(k.deleteTask, o.Delete, "delete task")
	k.yankTicket = rebind(k.yankTicket, o.Yank, "yank ticket")
	return k
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.newTask, k.taskInfo, k.today, k.pageEarlier, k.pageLater, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.newTask, k.taskInfo, k.moveColumn, k.deleteTask, k.undoDelete, k.yankTicket, k.reload, k.quit},
		{k.scrollLeft, k.scrollRight, k.rowUp, k.rowDown, k.pageEarlier, k.pageLater, k.today, k.jumpTask},
		{k.toggleHelp, k.cancel},
	}
}
