package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkowalski/quoteshelf/internal/common"
	"github.com/dkowalski/quoteshelf/internal/server/auth"
	"github.com/dkowalski/quoteshelf/internal/server/config"
	"github.com/dkowalski/quoteshelf/internal/server/models"
)

// fakeUserRepo implements users.Repository in memory.
type fakeUserRepo struct {
	byEmail map[string]*models.User
	nextID  int64
	failAll bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if f.failAll {
		return nil, errors.New("db down")
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, common.ErrConflict
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.failAll {
		return nil, errors.New("db down")
	}
	user, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	return cfg
}

func TestRegister_IssuesDecodableToken(t *testing.T) {
	t.Parallel()

	s := NewUserService(newFakeUserRepo(), testConfig())

	res, err := s.Register(context.Background(), "a@x.com", "A", "pw123456")
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.Equal(t, "a@x.com", res.User.Email)

	claims, err := auth.Decode(res.Token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	s := NewUserService(repo, testConfig())

	_, err := s.Register(context.Background(), "a@x.com", "A", "pw123456")
	require.NoError(t, err)

	_, err = s.Register(context.Background(), "a@x.com", "B", "other-pw")
	assert.True(t, errors.Is(err, common.ErrConflict))

	// no second row was created
	assert.Len(t, repo.byEmail, 1)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	s := NewUserService(newFakeUserRepo(), testConfig())

	tests := []struct {
		name     string
		email    string
		userName string
		password string
	}{
		{"missing email", "", "A", "pw"},
		{"missing name", "a@x.com", "", "pw"},
		{"missing password", "a@x.com", "A", ""},
		{"blank email", "   ", "A", "pw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tt.email, tt.userName, tt.password)
			assert.True(t, errors.Is(err, common.ErrValidation))
		})
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	s := NewUserService(repo, testConfig())

	_, err := s.Register(context.Background(), "a@x.com", "A", "pw123456")
	require.NoError(t, err)

	res, err := s.Login(context.Background(), "a@x.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", res.User.Email)
	assert.NotEmpty(t, res.Token)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("right-pw"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.byEmail["a@x.com"] = &models.User{ID: 1, Email: "a@x.com", Name: "A", PasswordHash: string(hash)}

	s := NewUserService(repo, testConfig())

	_, errWrongPassword := s.Login(context.Background(), "a@x.com", "wrong-pw")
	_, errNoUser := s.Login(context.Background(), "nobody@x.com", "whatever")

	// wrong password and unknown user must present identically
	assert.True(t, errors.Is(errWrongPassword, common.ErrUnauthorized))
	assert.True(t, errors.Is(errNoUser, common.ErrUnauthorized))
	assert.Equal(t, errWrongPassword.Error(), errNoUser.Error())
}

func TestUserService_StorageErrors(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.failAll = true
	s := NewUserService(repo, testConfig())

	_, err := s.Register(context.Background(), "a@x.com", "A", "pw")
	assert.True(t, errors.Is(err, common.ErrStorage))

	_, err = s.Login(context.Background(), "a@x.com", "pw")
	assert.True(t, errors.Is(err, common.ErrStorage))
}
