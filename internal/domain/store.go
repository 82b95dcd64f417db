package domain

import "context"

// FriendsCache is an opaque single-slot store of friends.
// Save fully replaces the previous content; Load returns the last saved set.
// There is no TTL and no partial eviction.
type FriendsCache interface {
	Save(friends []Friend) error
	Load(ctx context.Context) ([]Friend, error)
}
