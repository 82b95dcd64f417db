package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmcdole/purse/internal/domain"
)

const planPremium = "premium"

// MapFriends converts API friends to domain friends
func MapFriends(dtos []FriendDTO) []domain.Friend {
	friends := make([]domain.Friend, 0, len(dtos))
	for _, f := range dtos {
		friends = append(friends, domain.Friend{
			ID:    f.ID,
			Name:  f.DisplayName,
			Phone: f.Phone,
		})
	}
	return friends
}

// MapCards converts API cards to domain cards
func MapCards(dtos []CardDTO) []domain.Card {
	cards := make([]domain.Card, 0, len(dtos))
	for _, c := range dtos {
		cards = append(cards, domain.Card{
			ID:     c.ID,
			Number: c.Number,
			Holder: c.HolderName,
		})
	}
	return cards
}

// MapTransfers converts API transfers to domain transfers, keeping order.
// A malformed amount or date fails the whole batch.
func MapTransfers(dtos []TransferDTO) ([]domain.Transfer, error) {
	transfers := make([]domain.Transfer, 0, len(dtos))
	for _, t := range dtos {
		transfer, err := mapTransfer(t)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}
	return transfers, nil
}

func mapTransfer(t TransferDTO) (domain.Transfer, error) {
	amount, err := decimal.NewFromString(t.Amount)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("transfer %s: invalid amount %q: %w", t.ID, t.Amount, err)
	}
	date, err := time.Parse(time.RFC3339, t.CreatedAt)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("transfer %s: invalid date %q: %w", t.ID, t.CreatedAt, err)
	}
	return domain.Transfer{
		ID:           t.ID,
		Amount:       amount,
		CurrencyCode: strings.ToUpper(t.Currency),
		Description:  t.Description,
		Date:         date,
		Sender:       t.From,
		Recipient:    t.To,
		IsSender:     t.Direction == "out",
	}, nil
}

// MapSession converts the /me response
func MapSession(me MeResponse) domain.Session {
	return domain.Session{
		Username: me.Username,
		Premium:  strings.EqualFold(me.Plan, planPremium),
	}
}
