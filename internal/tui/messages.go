package tui

import "github.com/mmcdole/purse/internal/domain"

// ItemsLoadedMsg carries a successful load of one tab.
// Seq identifies the request so superseded results can be dropped.
type ItemsLoadedMsg struct {
	Tab   Tab
	Seq   int
	Items []domain.Item
}

// ErrMsg carries a failed load of one tab
type ErrMsg struct {
	Tab Tab
	Seq int
	Err error
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	return "loading " + e.Tab.String() + ": " + e.Err.Error()
}
