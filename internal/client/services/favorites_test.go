package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkowalski/quoteshelf/internal/client/api"
	"github.com/dkowalski/quoteshelf/internal/client/storage"
	"github.com/dkowalski/quoteshelf/internal/common"
)

func TestGuestAdd_StoresLocally(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	store := newMemStore()
	sess := newTestSession(t, store)
	s := NewFavoriteService(client, sess, store)

	require.NoError(t, s.Add(context.Background(), 1))
	require.NoError(t, s.Add(context.Background(), 2))
	// adding the same post again is success, not a duplicate entry
	require.NoError(t, s.Add(context.Background(), 1))

	ids, err := loadGuestFavorites(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
	assert.Empty(t, client.addedFavs, "guest favorites never reach the server")
}

func TestGuestRemove(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	store := newMemStore()
	sess := newTestSession(t, store)
	s := NewFavoriteService(client, sess, store)

	require.NoError(t, s.Add(context.Background(), 1))
	require.NoError(t, s.Remove(context.Background(), 1))

	err := s.Remove(context.Background(), 1)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	raw, err := store.Get(context.Background(), storage.SlotGuestFavorites)
	require.NoError(t, err)
	assert.Empty(t, raw, "an emptied guest slot is deleted, not stored as []")
}

func TestGuestList_ResolvesAgainstPublicView(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.posts[1] = api.Post{ID: 1, Content: "Visible", Author: "A"}
	client.posts[2] = api.Post{ID: 2, Content: "Hidden", Author: "A", Private: true}

	store := newMemStore()
	sess := newTestSession(t, store)
	s := NewFavoriteService(client, sess, store)

	require.NoError(t, s.Add(context.Background(), 1))
	require.NoError(t, s.Add(context.Background(), 2))
	require.NoError(t, s.Add(context.Background(), 3)) // never existed

	posts, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Visible", posts[0].Content)
}

func TestAuthenticatedMode_TalksToServer(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.loginRes = testAuthResult(t)
	client.favorites = []api.Post{{ID: 5, Content: "Kept"}}

	store := newMemStore()
	sess := newTestSession(t, store)
	auth := NewAuthService(client, sess, store)
	s := NewFavoriteService(client, sess, store)

	require.NoError(t, auth.Login(context.Background(), "alice@example.com", "pw"))

	require.NoError(t, s.Add(context.Background(), 5))
	assert.Equal(t, []int64{5}, client.addedFavs)

	// the server answering conflict still reads as success
	client.addFavErr[5] = common.ErrConflict
	require.NoError(t, s.Add(context.Background(), 5))

	posts, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 1, client.listFavsCalls)

	require.NoError(t, s.Remove(context.Background(), 5))
	assert.Equal(t, []int64{5}, client.removedFavs)

	ids, err := loadGuestFavorites(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, ids, "authenticated favorites never land in the guest slot")
}
