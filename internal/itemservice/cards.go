package itemservice

import (
	"context"

	"github.com/mmcdole/purse/internal/domain"
)

// CardsAPI loads cards from the network. Cards are never cached.
type CardsAPI struct {
	client   domain.CardsClient
	onSelect func(domain.Card)
}

func NewCardsAPI(client domain.CardsClient, onSelect func(domain.Card)) *CardsAPI {
	return &CardsAPI{client: client, onSelect: onSelect}
}

func (s *CardsAPI) LoadItems(ctx context.Context) ([]domain.Item, error) {
	cards, err := s.client.LoadCards(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, len(cards))
	for i, c := range cards {
		items[i] = domain.NewItem(c.Number, c.Holder, c, s.onSelect)
	}
	return items, nil
}
