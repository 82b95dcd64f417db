package itemservice

import (
	"context"

	"github.com/mmcdole/purse/internal/domain"
)

// TransfersAPI loads transfers from the network and keeps only those on
// its configured side. Order from the client is preserved.
type TransfersAPI struct {
	client        domain.TransfersClient
	direction     domain.Direction
	longDateStyle bool
	onSelect      func(domain.Transfer)
}

func NewTransfersAPI(
	client domain.TransfersClient,
	direction domain.Direction,
	longDateStyle bool,
	onSelect func(domain.Transfer),
) *TransfersAPI {
	return &TransfersAPI{
		client:        client,
		direction:     direction,
		longDateStyle: longDateStyle,
		onSelect:      onSelect,
	}
}

func (s *TransfersAPI) LoadItems(ctx context.Context) ([]domain.Item, error) {
	transfers, err := s.client.LoadTransfers(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(transfers))
	for _, t := range transfers {
		if !s.direction.Includes(t) {
			continue
		}
		items = append(items, domain.NewItem(
			TransferTitle(t),
			TransferDetail(t, s.longDateStyle),
			t,
			s.onSelect,
		))
	}
	return items, nil
}
