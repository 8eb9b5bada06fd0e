package ui

import (
	"github.com/charmbracelet/bubbles/list"
)

var _ list.Item = accountItem{}

// accountItem wraps a username to implement [list.Item].
type accountItem struct {
	username string
}

func (i accountItem) FilterValue() string { return i.username }
func (i accountItem) Title() string       { return i.username }
func (i accountItem) Description() string { return "instagram.com/" + i.username }

// newAccountList builds a [list.Model] over usernames, keeping their order.
func newAccountList(title string, usernames []string, width, height int) list.Model {
	items := make([]list.Item, len(usernames))
	for i, name := range usernames {
		items[i] = accountItem{username: name}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New(items, delegate, width, height)
	l.Title = title
	l.SetShowHelp(false)
	l.SetStatusBarItemName("user", "users")
	l.SetShowStatusBar(true)
	return l
}
