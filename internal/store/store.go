package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/purse/internal/domain"
)

var bucketFriends = []byte("friends")

// keyFriends holds the single cached friends list
const keyFriends = "list"

// friendsSnapshot is what gets persisted for one Save
type friendsSnapshot struct {
	SavedAt time.Time       `json:"saved_at"`
	Friends []domain.Friend `json:"friends"`
}

// FriendsStore implements domain.FriendsCache using BoltDB.
// Each Save replaces the previous list; there is no expiry.
type FriendsStore struct {
	db *bolt.DB
	mu sync.RWMutex

	// promoted copy of the persisted snapshot
	cached []byte
}

// NewFriendsStore opens the cache under baseCacheDir, namespaced by apiURL.
// An empty baseCacheDir keeps the cache in memory only.
func NewFriendsStore(baseCacheDir, apiURL string) (*FriendsStore, error) {
	if baseCacheDir == "" {
		return &FriendsStore{}, nil
	}

	dir := CacheDir(baseCacheDir, apiURL)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(dir, "purse.db"), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFriends)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &FriendsStore{db: db}, nil
}

// CacheDir is the directory holding the cache for apiURL
func CacheDir(baseCacheDir, apiURL string) string {
	if apiURL == "" {
		return baseCacheDir
	}
	return filepath.Join(baseCacheDir, hashAPIURL(apiURL))
}

func hashAPIURL(apiURL string) string {
	normalized := strings.TrimRight(strings.ToLower(apiURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *FriendsStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save replaces the cached friends list
func (s *FriendsStore) Save(friends []domain.Friend) error {
	data, err := json.Marshal(friendsSnapshot{SavedAt: time.Now(), Friends: friends})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cached = data
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFriends).Put([]byte(keyFriends), data)
	})
}

// Load returns the last saved list, or domain.ErrCacheEmpty
func (s *FriendsStore) Load(ctx context.Context) ([]domain.Friend, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Friends, nil
}

// SavedAt reports when the cached list was written
func (s *FriendsStore) SavedAt() (time.Time, bool) {
	snap, err := s.snapshot()
	if err != nil {
		return time.Time{}, false
	}
	return snap.SavedAt, true
}

// Clear drops the cached list
func (s *FriendsStore) Clear() error {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFriends).Delete([]byte(keyFriends))
	})
}

func (s *FriendsStore) snapshot() (friendsSnapshot, error) {
	var snap friendsSnapshot

	s.mu.RLock()
	data := s.cached
	s.mu.RUnlock()

	if data == nil && s.db != nil {
		err := s.db.View(func(tx *bolt.Tx) error {
			if v := tx.Bucket(bucketFriends).Get([]byte(keyFriends)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
		if err != nil {
			return snap, err
		}
		if data != nil {
			s.mu.Lock()
			s.cached = data
			s.mu.Unlock()
		}
	}

	if data == nil {
		return snap, domain.ErrCacheEmpty
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("decode cached friends: %w", err)
	}
	return snap, nil
}
