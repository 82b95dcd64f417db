package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/purse/internal/domain"
)

// LoadItemsCmd runs svc off the Update loop and posts its single outcome
// back to it.
func LoadItemsCmd(tab Tab, seq int, svc domain.ItemService) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.LoadItems(context.Background())
		if err != nil {
			return ErrMsg{Tab: tab, Seq: seq, Err: err}
		}
		return ItemsLoadedMsg{Tab: tab, Seq: seq, Items: items}
	}
}
