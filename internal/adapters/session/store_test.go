package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"go.trai.ch/toil/internal/adapters/session"
	"go.trai.ch/toil/internal/core/domain"
)

func TestStore_GetSet(t *testing.T) {
	store := session.NewStore()

	_, ok := store.Get("/proj", domain.KeyPreset)
	assert.False(t, ok)

	store.Set("/proj", domain.KeyPreset, "debug")
	value, ok := store.Get("/proj", domain.KeyPreset)
	require.True(t, ok)
	assert.Equal(t, "debug", value)
}

func TestStore_LastWriterWins(t *testing.T) {
	store := session.NewStore()

	store.Set("/proj", domain.KeyTarget, "app")
	store.Set("/proj", domain.KeyTarget, "tool")

	value, _ := store.Get("/proj", domain.KeyTarget)
	assert.Equal(t, "tool", value)
}

func TestStore_EmptyValueIsStored(t *testing.T) {
	store := session.NewStore()

	// An explicitly empty build target means "build all targets" and must
	// stay distinguishable from never having selected one.
	store.Set("/proj", domain.KeyBuildTarget, "")
	value, ok := store.Get("/proj", domain.KeyBuildTarget)
	require.True(t, ok)
	assert.Empty(t, value)
}

func TestStore_RootsAreIsolated(t *testing.T) {
	store := session.NewStore()

	store.Set("/proj-a", domain.KeyPreset, "debug")

	_, ok := store.Get("/proj-b", domain.KeyPreset)
	assert.False(t, ok)
}

func TestStore_RootSpellingIsNormalized(t *testing.T) {
	store := session.NewStore()

	store.Set("/proj/sub/..", domain.KeyPreset, "debug")
	value, ok := store.Get("/proj/", domain.KeyPreset)
	require.True(t, ok)
	assert.Equal(t, "debug", value)
}

func TestStore_UnknownKeysRoundTrip(t *testing.T) {
	store := session.NewStore()

	store.Set("/proj", "custom_key", "custom")
	value, ok := store.Get("/proj", "custom_key")
	require.True(t, ok)
	assert.Equal(t, "custom", value)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := session.NewStore()

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				store.Set("/proj", domain.KeyTarget, "app")
				_, _ = store.Get("/proj", domain.KeyTarget)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	value, ok := store.Get("/proj", domain.KeyTarget)
	require.True(t, ok)
	assert.Equal(t, "app", value)
}
