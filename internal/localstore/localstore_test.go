package localstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceIDStableAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	id, err := s.DeviceID()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "user_"), "got %q", id)

	again, err := s.DeviceID()
	require.NoError(t, err)
	assert.Equal(t, id, again)

	reopened, err := Open(dir)
	require.NoError(t, err)
	persisted, err := reopened.DeviceID()
	require.NoError(t, err)
	assert.Equal(t, id, persisted)
}

func TestVotesRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)

	empty, err := s.LoadVotes()
	require.NoError(t, err)
	assert.Empty(t, empty)

	votes := map[uint]int{1: 1, 7: -1, 12: 0}
	require.NoError(t, s.SaveVotes(votes))

	reopened, err := Open(dir)
	require.NoError(t, err)
	loaded, err := reopened.LoadVotes()
	require.NoError(t, err)
	assert.Equal(t, votes, loaded)
}

func TestSessionTokenLifecycle(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	assert.Empty(t, s.SessionToken())

	require.NoError(t, s.SaveSessionToken("token-123"))
	assert.Equal(t, "token-123", s.SessionToken())

	reopened, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, "token-123", reopened.SessionToken())

	require.NoError(t, reopened.ClearSession())
	assert.Empty(t, reopened.SessionToken())

	final, err := Open(dir)
	require.NoError(t, err)
	assert.Empty(t, final.SessionToken())
}

func TestCorruptStoreIsRecreated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte("not json{{"), 0o600))

	s, err := Open(dir)
	require.NoError(t, err)

	votes, err := s.LoadVotes()
	require.NoError(t, err)
	assert.Empty(t, votes)

	// Writes work again after recovery.
	require.NoError(t, s.SaveVotes(map[uint]int{3: 1}))
	reopened, err := Open(dir)
	require.NoError(t, err)
	loaded, err := reopened.LoadVotes()
	require.NoError(t, err)
	assert.Equal(t, map[uint]int{3: 1}, loaded)
}

func TestOtherKeysSurviveVoteWrites(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	id, err := s.DeviceID()
	require.NoError(t, err)

	require.NoError(t, s.SaveVotes(map[uint]int{1: 1}))
	require.NoError(t, s.SaveSessionToken("tok"))
	require.NoError(t, s.SaveVotes(map[uint]int{1: 0}))

	reopened, err := Open(dir)
	require.NoError(t, err)
	persistedID, err := reopened.DeviceID()
	require.NoError(t, err)
	assert.Equal(t, id, persistedID)
	assert.Equal(t, "tok", reopened.SessionToken())
}
