package credstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stocklens/go-inventory-client/credstore"
	"github.com/stocklens/go-inventory-client/users"
)

func newFileRepo(t *testing.T) (*credstore.FileRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return credstore.NewFileRepo(path), path
}

func TestFileRepoRoundTrip(t *testing.T) {
	repo, _ := newFileRepo(t)

	creds, err := repo.Credentials()
	require.NoError(t, err)
	require.Nil(t, creds)

	stored := &credstore.Credentials{Access: "a", Refresh: "r"}
	require.NoError(t, repo.SetCredentials(stored))

	profile := &users.Profile{ID: 1, Username: "alice", Email: "alice@example.com"}
	require.NoError(t, repo.SetProfile(profile))

	gotCreds, err := repo.Credentials()
	require.NoError(t, err)
	require.Equal(t, stored, gotCreds)

	gotProfile, err := repo.Profile()
	require.NoError(t, err)
	require.Equal(t, profile, gotProfile)
}

func TestFileRepoSurvivesReopen(t *testing.T) {
	repo, path := newFileRepo(t)
	require.NoError(t, repo.SetCredentials(&credstore.Credentials{Access: "a", Refresh: "r"}))

	reopened := credstore.NewFileRepo(path)
	creds, err := reopened.Credentials()
	require.NoError(t, err)
	require.Equal(t, "a", creds.Access)
	require.Equal(t, "r", creds.Refresh)
}

func TestFileRepoPartialPairReadsAsLoggedOut(t *testing.T) {
	repo, _ := newFileRepo(t)
	require.NoError(t, repo.SetCredentials(&credstore.Credentials{Access: "a"}))

	// A pair missing either half must read as entirely absent.
	creds, err := repo.Credentials()
	require.NoError(t, err)
	require.Nil(t, creds)
}

func TestFileRepoClear(t *testing.T) {
	repo, path := newFileRepo(t)
	require.NoError(t, repo.SetCredentials(&credstore.Credentials{Access: "a", Refresh: "r"}))
	require.NoError(t, repo.SetProfile(&users.Profile{ID: 1, Username: "alice"}))

	require.NoError(t, repo.Clear())
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	creds, err := repo.Credentials()
	require.NoError(t, err)
	require.Nil(t, creds)

	// Clearing twice is fine.
	require.NoError(t, repo.Clear())
}

func TestFileRepoCorruptFileReadsAsLoggedOut(t *testing.T) {
	repo, path := newFileRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o600))

	creds, err := repo.Credentials()
	require.NoError(t, err)
	require.Nil(t, creds)
}
