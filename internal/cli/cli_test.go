package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv is an isolated config, cache and log location
type testEnv struct {
	dir        string
	configPath string
	cacheDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	return &testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.yaml"),
		cacheDir:   filepath.Join(dir, "cache"),
	}
}

// writeConfig writes a fixture-backed config with the given fixture settings
func (e *testEnv) writeConfig(t *testing.T, fixture string) {
	t.Helper()
	body := fmt.Sprintf(`api:
  source: fixture
fixture:
%s
cache:
  dir: %s
logging:
  file: %s
  level: debug
`, fixture, e.cacheDir, filepath.Join(e.dir, "purse.log"))
	require.NoError(t, os.WriteFile(e.configPath, []byte(body), 0644))
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "purse dev\n", out)
}

func TestList_FriendsPlain(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "  premium: false")

	out, err := env.run(t, "list", "friends")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Lima\t+1 555 0100\n")
	assert.Equal(t, 6, strings.Count(out, "\n"))
}

func TestList_TransfersByDirection(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "  premium: false")

	sent, err := env.run(t, "list", "sent")
	require.NoError(t, err)
	assert.Contains(t, sent, "Sent to: Bo Svensson on ")
	assert.NotContains(t, sent, "Received from:")

	received, err := env.run(t, "list", "received")
	require.NoError(t, err)
	assert.Contains(t, received, "Received from: Ana Lima on ")
	assert.NotContains(t, received, "Sent to:")
}

func TestList_Filter(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "  premium: false")

	out, err := env.run(t, "list", "friends", "--filter", "chidi")
	require.NoError(t, err)
	assert.Equal(t, "Chidi Okafor\t+234 803 555 0102\n", out)
}

func TestList_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "  premium: false")

	out, err := env.run(t, "list", "cards", "--json")
	require.NoError(t, err)

	var cards []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &cards))
	require.Len(t, cards, 3)
	assert.Equal(t, "4111 1111 1111 1111", cards[0]["number"])
}

func TestList_UnknownScreen(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "  premium: false")

	_, err := env.run(t, "list", "loans")
	assert.ErrorContains(t, err, "unknown list")
}

func TestList_RetriesRecoverFromTransientFailures(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "  fail_first: 2")

	// friends retry twice, so two leading failures are absorbed
	out, err := env.run(t, "list", "friends")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Lima")

	// transfers retry once, so they are not
	_, err = env.run(t, "list", "sent")
	assert.ErrorContains(t, err, "loading sent")
}

func TestList_PremiumFriendsServedFromCacheWhenOffline(t *testing.T) {
	env := newTestEnv(t)

	env.writeConfig(t, "  premium: true")
	online, err := env.run(t, "list", "friends")
	require.NoError(t, err)

	env.writeConfig(t, "  premium: true\n  offline: true")
	offline, err := env.run(t, "list", "friends")
	require.NoError(t, err)
	assert.Equal(t, online, offline)

	// cards have no offline copy
	_, err = env.run(t, "list", "cards")
	assert.Error(t, err)
}

func TestList_StandardFriendsHaveNoOfflineCopy(t *testing.T) {
	env := newTestEnv(t)

	env.writeConfig(t, "  premium: false")
	_, err := env.run(t, "list", "friends")
	require.NoError(t, err)

	env.writeConfig(t, "  premium: false\n  offline: true")
	_, err = env.run(t, "list", "friends")
	assert.Error(t, err)
}

func TestCache_InfoAndClear(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "  premium: true")

	out, err := env.run(t, "cache", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "friends:  (empty)")

	_, err = env.run(t, "list", "friends")
	require.NoError(t, err)

	out, err = env.run(t, "cache", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "friends:  6")
	assert.Contains(t, out, "saved:")

	out, err = env.run(t, "cache", "clear")
	require.NoError(t, err)
	assert.Equal(t, "cache cleared\n", out)

	_, err = os.Stat(env.cacheDir)
	assert.True(t, os.IsNotExist(err))
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, env.configPath)

	_, err = env.run(t, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = env.run(t, "config", "init", "--force")
	assert.NoError(t, err)

	data, err := os.ReadFile(env.configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "source: fixture")
}
