package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := NewEnvStorage()
	t.Cleanup(func() { _ = storage.Delete(ctx, KeyGitHub) })

	tok := Token{Value: "ghp_secret", Scope: "repo", CreatedAt: time.Now()}
	require.NoError(t, storage.Store(ctx, KeyGitHub, tok))

	got, err := storage.Retrieve(ctx, KeyGitHub)
	require.NoError(t, err)
	assert.Equal(t, "ghp_secret", got.Value)
	assert.Equal(t, "repo", got.Scope)

	require.NoError(t, storage.Delete(ctx, KeyGitHub))
	_, err = storage.Retrieve(ctx, KeyGitHub)
	assert.Equal(t, ErrTokenNotFound, err)
}

func TestEnvStorageBareValue(t *testing.T) {
	ctx := context.Background()
	storage := NewEnvStorage()
	t.Setenv(storage.FormatEnvKey(KeyGitHub), "ghp_rawvalue")

	got, err := storage.Retrieve(ctx, KeyGitHub)
	require.NoError(t, err)
	assert.Equal(t, "ghp_rawvalue", got.Value)
}

func TestFormatEnvKey(t *testing.T) {
	storage := NewEnvStorage()
	assert.Equal(t, "UPM_TOKEN_GITHUB", storage.FormatEnvKey("GITHUB"))
	assert.Equal(t, "UPM_TOKEN_MY_KEY", storage.FormatEnvKey("my-key"))
}
