package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkowalski/quoteshelf/internal/client/api"
	"github.com/dkowalski/quoteshelf/internal/client/session"
	"github.com/dkowalski/quoteshelf/internal/client/storage"
	"github.com/dkowalski/quoteshelf/internal/common"
	"github.com/dkowalski/quoteshelf/internal/server/auth"
)

// memStore implements storage.Repository in memory.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]byte{}
	return nil
}

// fakeClient implements api.Client for service tests.
type fakeClient struct {
	registerRes *api.AuthResult
	registerErr error
	loginRes    *api.AuthResult
	loginErr    error

	posts     map[int64]api.Post
	favorites []api.Post

	addFavErr     map[int64]error
	addedFavs     []int64
	removedFavs   []int64
	removeFavErr  error
	listPostsErr  error
	listFavsCalls int
}

func newFakeClient() *fakeClient {
	return &fakeClient{posts: map[int64]api.Post{}, addFavErr: map[int64]error{}}
}

func (f *fakeClient) Register(ctx context.Context, email, name, password string) (*api.AuthResult, error) {
	return f.registerRes, f.registerErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeClient) ListPosts(ctx context.Context, token string) ([]api.Post, error) {
	if f.listPostsErr != nil {
		return nil, f.listPostsErr
	}
	result := []api.Post{}
	for _, p := range f.posts {
		result = append(result, p)
	}
	return result, nil
}

func (f *fakeClient) GetPost(ctx context.Context, token string, id int64) (*api.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if p.Private && token == "" {
		return nil, common.ErrForbidden
	}
	return &p, nil
}

func (f *fakeClient) CreatePost(ctx context.Context, token string, in api.PostInput) (*api.Post, error) {
	return nil, errors.New("not used")
}

func (f *fakeClient) UpdatePost(ctx context.Context, token string, id int64, in api.PostInput) (*api.Post, error) {
	return nil, errors.New("not used")
}

func (f *fakeClient) DeletePost(ctx context.Context, token string, id int64) error {
	return errors.New("not used")
}

func (f *fakeClient) ListFavorites(ctx context.Context, token string) ([]api.Post, error) {
	f.listFavsCalls++
	return f.favorites, nil
}

func (f *fakeClient) AddFavorite(ctx context.Context, token string, postID int64) error {
	if err, ok := f.addFavErr[postID]; ok {
		return err
	}
	f.addedFavs = append(f.addedFavs, postID)
	return nil
}

func (f *fakeClient) RemoveFavorite(ctx context.Context, token string, postID int64) error {
	if f.removeFavErr != nil {
		return f.removeFavErr
	}
	f.removedFavs = append(f.removedFavs, postID)
	return nil
}

func (f *fakeClient) Filters(ctx context.Context, token string) (*api.Filters, error) {
	return &api.Filters{}, nil
}

func (f *fakeClient) Ping(ctx context.Context) error {
	return nil
}

func testAuthResult(t *testing.T) *api.AuthResult {
	t.Helper()
	token, err := auth.Issue(1, "alice@example.com", []byte("secret"), time.Hour)
	require.NoError(t, err)
	return &api.AuthResult{
		Token: token,
		User:  api.User{ID: 1, Email: "alice@example.com", Name: "Alice"},
	}
}

func newTestSession(t *testing.T, store storage.Repository) *session.Manager {
	t.Helper()
	m := session.NewManager(store, time.Millisecond, nil)
	t.Cleanup(func() { _ = m.End(context.Background()) })
	return m
}

func TestLogin_OpensSession(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.loginRes = testAuthResult(t)

	store := newMemStore()
	sess := newTestSession(t, store)
	s := NewAuthService(client, sess, store)

	require.NoError(t, s.Login(context.Background(), "alice@example.com", "pw"))

	assert.Equal(t, session.StateActive, sess.State())
	identity, ok := sess.Identity()
	require.True(t, ok)
	assert.Equal(t, "Alice", identity.Name)
}

func TestLogin_FailureStaysLoggedOut(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.loginErr = common.ErrUnauthorized

	store := newMemStore()
	sess := newTestSession(t, store)
	s := NewAuthService(client, sess, store)

	err := s.Login(context.Background(), "alice@example.com", "wrong")
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
	assert.Equal(t, session.StateLoggedOut, sess.State())
}

func TestLogin_MergesGuestFavorites(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.loginRes = testAuthResult(t)
	// one of the two was already favorite server-side
	client.addFavErr[2] = common.ErrConflict

	store := newMemStore()
	require.NoError(t, saveGuestFavorites(context.Background(), store, []int64{1, 2}))

	sess := newTestSession(t, store)
	s := NewAuthService(client, sess, store)

	require.NoError(t, s.Login(context.Background(), "alice@example.com", "pw"))

	assert.Equal(t, []int64{1}, client.addedFavs, "conflicting id is already present, only the other is created")

	raw, err := store.Get(context.Background(), storage.SlotGuestFavorites)
	require.NoError(t, err)
	assert.Empty(t, raw, "guest slot must be cleared after a successful merge")
}

func TestLogin_MergeFailureKeepsGuestSlot(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.loginRes = testAuthResult(t)
	client.addFavErr[1] = common.ErrStorage

	store := newMemStore()
	require.NoError(t, saveGuestFavorites(context.Background(), store, []int64{1}))

	sess := newTestSession(t, store)
	s := NewAuthService(client, sess, store)

	err := s.Login(context.Background(), "alice@example.com", "pw")
	assert.True(t, errors.Is(err, common.ErrStorage))

	ids, err := loadGuestFavorites(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids, "an unmerged favorite must survive for the next login")
}

func TestLogout_EndsSession(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.loginRes = testAuthResult(t)

	store := newMemStore()
	sess := newTestSession(t, store)
	s := NewAuthService(client, sess, store)

	require.NoError(t, s.Login(context.Background(), "alice@example.com", "pw"))
	require.NoError(t, s.Logout(context.Background()))

	assert.Equal(t, session.StateLoggedOut, sess.State())
	raw, err := store.Get(context.Background(), storage.SlotCredential)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestRegister_OpensSession(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.registerRes = testAuthResult(t)

	store := newMemStore()
	sess := newTestSession(t, store)
	s := NewAuthService(client, sess, store)

	require.NoError(t, s.Register(context.Background(), "alice@example.com", "Alice", "pw"))
	assert.Equal(t, session.StateActive, sess.State())
}
