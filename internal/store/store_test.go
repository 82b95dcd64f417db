package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/purse/internal/domain"
	"github.com/mmcdole/purse/internal/store"
)

var (
	ana = domain.Friend{ID: "f-ana", Name: "Ana", Phone: "111"}
	bo  = domain.Friend{ID: "f-bo", Name: "Bo", Phone: "222"}
)

func TestFriendsStore_EmptyLoad(t *testing.T) {
	s, err := store.NewFriendsStore(t.TempDir(), "https://api.example.com")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCacheEmpty)

	_, ok := s.SavedAt()
	assert.False(t, ok)
}

func TestFriendsStore_LastSaveWins(t *testing.T) {
	s, err := store.NewFriendsStore(t.TempDir(), "https://api.example.com")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save([]domain.Friend{ana, bo}))
	require.NoError(t, s.Save([]domain.Friend{bo}))

	friends, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Friend{bo}, friends)
}

func TestFriendsStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := store.NewFriendsStore(dir, "https://api.example.com/")
	require.NoError(t, err)
	require.NoError(t, s.Save([]domain.Friend{ana, bo}))
	require.NoError(t, s.Close())

	// trailing slash and case do not change the namespace
	reopened, err := store.NewFriendsStore(dir, "HTTPS://API.EXAMPLE.COM")
	require.NoError(t, err)
	defer reopened.Close()

	friends, err := reopened.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Friend{ana, bo}, friends)

	_, ok := reopened.SavedAt()
	assert.True(t, ok)
}

func TestFriendsStore_NamespacedByURL(t *testing.T) {
	dir := t.TempDir()

	first, err := store.NewFriendsStore(dir, "https://one.example.com")
	require.NoError(t, err)
	require.NoError(t, first.Save([]domain.Friend{ana}))
	require.NoError(t, first.Close())

	second, err := store.NewFriendsStore(dir, "https://two.example.com")
	require.NoError(t, err)
	defer second.Close()

	_, err = second.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCacheEmpty)

	_, err = os.Stat(filepath.Join(store.CacheDir(dir, "https://one.example.com"), "purse.db"))
	assert.NoError(t, err)
}

func TestFriendsStore_Clear(t *testing.T) {
	s, err := store.NewFriendsStore(t.TempDir(), "")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save([]domain.Friend{ana}))
	require.NoError(t, s.Clear())

	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCacheEmpty)
}

func TestFriendsStore_MemoryOnly(t *testing.T) {
	s, err := store.NewFriendsStore("", "https://api.example.com")
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCacheEmpty)

	require.NoError(t, s.Save([]domain.Friend{ana}))
	friends, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Friend{ana}, friends)
	assert.NoError(t, s.Close())
}

func TestFriendsStore_SavingEmptyListIsNotEmptyCache(t *testing.T) {
	s, err := store.NewFriendsStore("", "")
	require.NoError(t, err)

	require.NoError(t, s.Save([]domain.Friend{}))
	friends, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestNullCache(t *testing.T) {
	var c domain.FriendsCache = store.NullCache{}

	require.NoError(t, c.Save([]domain.Friend{ana}))
	friends, err := c.Load(context.Background())
	assert.Nil(t, friends)
	assert.Same(t, domain.ErrCacheDisabled, err)
}
