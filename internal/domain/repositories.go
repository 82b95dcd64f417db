package domain

import "context"

// FriendsClient loads the user's friends from the network
type FriendsClient interface {
	LoadFriends(ctx context.Context) ([]Friend, error)
}

// CardsClient loads the user's cards from the network
type CardsClient interface {
	LoadCards(ctx context.Context) ([]Card, error)
}

// TransfersClient loads every transfer, sent and received, from the network
type TransfersClient interface {
	LoadTransfers(ctx context.Context) ([]Transfer, error)
}

// SessionClient resolves the signed-in account (used for the premium check)
type SessionClient interface {
	LoadSession(ctx context.Context) (Session, error)
}
