package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind identifies which domain record an Item was projected from
type RecordKind string

const (
	RecordFriend   RecordKind = "friend"
	RecordCard     RecordKind = "card"
	RecordTransfer RecordKind = "transfer"
)

// Record is implemented by every domain record that can back a list Item.
// Records are value types: an Item always refers to the exact record that was
// shown, never to one mutated after the load.
type Record interface {
	RecordKind() RecordKind
}

// Friend is a contact the user can send money to.
// Friends are mirrored into the local cache for privileged accounts.
type Friend struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (Friend) RecordKind() RecordKind { return RecordFriend }

// Card is a payment card registered on the account
type Card struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Holder string `json:"holder"`
}

func (Card) RecordKind() RecordKind { return RecordCard }

// Transfer is a single money movement. IsSender is true when the current
// user sent the money and false when they received it.
type Transfer struct {
	ID           string          `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	Sender       string          `json:"sender"`
	Recipient    string          `json:"recipient"`
	IsSender     bool            `json:"is_sender"`
}

func (Transfer) RecordKind() RecordKind { return RecordTransfer }

// Direction selects which side of a transfer a list shows
type Direction int

const (
	DirectionSent Direction = iota
	DirectionReceived
)

func (d Direction) String() string {
	switch d {
	case DirectionSent:
		return "sent"
	case DirectionReceived:
		return "received"
	default:
		return "unknown"
	}
}

// Includes reports whether t belongs on a list for this direction
func (d Direction) Includes(t Transfer) bool {
	if d == DirectionSent {
		return t.IsSender
	}
	return !t.IsSender
}

// Session describes the signed-in account
type Session struct {
	Username string `json:"username"`
	Premium  bool   `json:"premium"`
}
