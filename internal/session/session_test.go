package session

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnityEssentials/go-upmtools/internal/catalog"
	"github.com/UnityEssentials/go-upmtools/internal/errors"
	"github.com/UnityEssentials/go-upmtools/internal/progress"
	"github.com/UnityEssentials/go-upmtools/internal/token"
)

type fakeLister struct {
	entries []catalog.Identifier
	err     error
	calls   int
}

func (f *fakeLister) ListRepositories(ctx context.Context) ([]catalog.Identifier, error) {
	f.calls++
	return f.entries, f.err
}

func ids(names ...string) []catalog.Identifier {
	out := make([]catalog.Identifier, 0, len(names))
	for _, n := range names {
		id, err := catalog.ParseIdentifier(n)
		if err != nil {
			panic(err)
		}
		out = append(out, id)
	}
	return out
}

func newTestSession(t *testing.T, lister *fakeLister, targetDir string) (*Session, token.Storage) {
	t.Helper()
	storage := token.NewMemoryStorage()
	cred, err := token.NewToken("test-token", time.Time{}, "")
	require.NoError(t, err)
	require.NoError(t, storage.Store(context.Background(), token.KeyGitHub, *cred))

	sess := New(storage, lister, progress.NopTracker{}, targetDir)
	require.NoError(t, sess.ResolveCredential(context.Background()))
	return sess, storage
}

func TestFetchTransitionsToIdle(t *testing.T) {
	lister := &fakeLister{entries: ids("a/One", "a/Two")}
	sess, _ := newTestSession(t, lister, t.TempDir())

	assert.Equal(t, StateUnauthenticated, sess.State())
	require.NoError(t, sess.Fetch(context.Background()))
	assert.Equal(t, StateIdle, sess.State())
	assert.Equal(t, ids("a/One", "a/Two"), sess.Displayed())
}

func TestFetchExcludesExistingLocalFolders(t *testing.T) {
	target := t.TempDir()
	// "Two" exists below the root, not at top level; still excluded.
	require.NoError(t, os.MkdirAll(filepath.Join(target, "Group", "Two"), 0755))

	lister := &fakeLister{entries: ids("a/One", "a/Two")}
	sess, _ := newTestSession(t, lister, target)

	require.NoError(t, sess.Fetch(context.Background()))
	assert.Equal(t, ids("a/One"), sess.Displayed())

	// --all shows everything again
	sess.SetShowAll(true)
	assert.Equal(t, ids("a/One", "a/Two"), sess.Displayed())
}

func TestFetchAuthFailureClearsCredentialAndCatalog(t *testing.T) {
	lister := &fakeLister{entries: ids("a/One")}
	sess, storage := newTestSession(t, lister, t.TempDir())
	require.NoError(t, sess.Fetch(context.Background()))

	lister.err = errors.NewAPIHTTPError("api-request", http.StatusUnauthorized, "Bad credentials", nil)
	err := sess.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsAuthError(err))

	assert.Equal(t, StateUnauthenticated, sess.State())
	assert.Empty(t, sess.Displayed())

	_, err = storage.Retrieve(context.Background(), token.KeyGitHub)
	assert.Equal(t, token.ErrTokenNotFound, err)
}

func TestFetchServerErrorClearsCredential(t *testing.T) {
	// Any HTTP rejection presumes the credential invalid, not just 401/403.
	lister := &fakeLister{entries: ids("a/One")}
	sess, storage := newTestSession(t, lister, t.TempDir())
	require.NoError(t, sess.Fetch(context.Background()))

	lister.err = errors.NewAPIHTTPError("api-request", http.StatusInternalServerError, "boom", nil)
	err := sess.Fetch(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateUnauthenticated, sess.State())
	assert.Empty(t, sess.Displayed())
	_, err = storage.Retrieve(context.Background(), token.KeyGitHub)
	assert.Equal(t, token.ErrTokenNotFound, err)
}

func TestFetchNetworkFailureKeepsCatalog(t *testing.T) {
	lister := &fakeLister{entries: ids("a/One")}
	sess, storage := newTestSession(t, lister, t.TempDir())
	require.NoError(t, sess.Fetch(context.Background()))

	lister.err = errors.NewAPIError("api-request", "request failed", fmt.Errorf("dial tcp: connection refused"))
	err := sess.Fetch(context.Background())
	require.Error(t, err)

	// State and catalog survive so the fetch can simply be retried.
	assert.Equal(t, StateIdle, sess.State())
	assert.Equal(t, ids("a/One"), sess.Displayed())
	_, err = storage.Retrieve(context.Background(), token.KeyGitHub)
	assert.NoError(t, err)
}

func TestFetchRequiresCredential(t *testing.T) {
	sess := New(token.NewMemoryStorage(), &fakeLister{}, nil, t.TempDir())
	err := sess.Fetch(context.Background())
	assert.Equal(t, ErrNoCredential, err)
}

func TestFetchWhileBusy(t *testing.T) {
	lister := &fakeLister{entries: ids("a/One")}
	sess, _ := newTestSession(t, lister, t.TempDir())

	sess.mu.Lock()
	sess.busy = true
	sess.mu.Unlock()

	err := sess.Fetch(context.Background())
	assert.Equal(t, ErrBusy, err)
	assert.Equal(t, 0, lister.calls)
}

func TestSearchResetsSelection(t *testing.T) {
	lister := &fakeLister{entries: ids("a/Timer", "a/Pool", "b/TimerUtils")}
	sess, _ := newTestSession(t, lister, t.TempDir())
	require.NoError(t, sess.Fetch(context.Background()))

	sess.SelectAll()
	assert.Len(t, sess.Selected(), 3)

	sess.Search("timer")
	assert.Equal(t, ids("a/Timer", "b/TimerUtils"), sess.Displayed())
	// Selection must realign with the new view, not carry stale flags.
	assert.Empty(t, sess.Selected())

	sess.Toggle(1)
	assert.Equal(t, ids("b/TimerUtils"), sess.Selected())

	sess.Search("")
	assert.Empty(t, sess.Selected())
	assert.Len(t, sess.Displayed(), 3)
}

func TestSelectMatching(t *testing.T) {
	lister := &fakeLister{entries: ids("a/Timer", "a/Pool", "b/TimerUtils")}
	sess, _ := newTestSession(t, lister, t.TempDir())
	require.NoError(t, sess.Fetch(context.Background()))

	matched := sess.SelectMatching("timer")
	assert.Equal(t, 2, matched)
	assert.Equal(t, ids("a/Timer", "b/TimerUtils"), sess.Selected())
}
