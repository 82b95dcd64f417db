package domain

import "context"

// Item is the uniform display projection of a domain record.
// Items are rebuilt on every successful load and never mutated afterwards.
type Item struct {
	TitleText  string
	DetailText string

	// Record is the exact record this item was projected from
	Record Record

	onSelect func(Record)
}

// NewItem builds an Item whose Select hands rec back to onSelect.
// A nil onSelect makes Select a no-op.
func NewItem[T Record](title, detail string, rec T, onSelect func(T)) Item {
	item := Item{TitleText: title, DetailText: detail, Record: rec}
	if onSelect != nil {
		item.onSelect = func(r Record) { onSelect(r.(T)) }
	}
	return item
}

// Select reports the item's record to the selection callback it was built with
func (i Item) Select() {
	if i.onSelect != nil {
		i.onSelect(i.Record)
	}
}

// ItemService is the single abstraction every list source implements.
//
// LoadItems produces exactly one outcome per call and that outcome is observed
// on the calling goroutine, whatever the underlying client does internally.
// Callers that own UI state run LoadItems off their event loop and post the
// result back to it (see tui.LoadItemsCmd).
type ItemService interface {
	LoadItems(ctx context.Context) ([]Item, error)
}

// ItemServiceFunc adapts a plain function to ItemService
type ItemServiceFunc func(ctx context.Context) ([]Item, error)

func (f ItemServiceFunc) LoadItems(ctx context.Context) ([]Item, error) {
	return f(ctx)
}
