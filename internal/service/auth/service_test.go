package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/genapagie/ovinpro/internal/domain/models"
)

type fakeUserStore struct {
	users       map[string]models.User // keyed by username
	createCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user models.User) error {
	f.createCalls++
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := f.users[username]; ok {
		return &u, nil
	}
	return nil, nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(userID, _ string) (string, error) { return "token-" + userID, nil }

func TestRegisterCreatesUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, fakeIssuer{}, nil)

	user, tok, err := svc.Register(context.Background(), "djamel_dz", "secret", "Ferme El-Amel")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "djamel_dz", user.Username)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "token-"+user.ID, tok)

	// The stored credential is a bcrypt hash, never the raw password.
	assert.NotEqual(t, "secret", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))
}

func TestRegisterRejectsDuplicateBeforeWrite(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, fakeIssuer{}, nil)

	_, _, err := svc.Register(context.Background(), "djamel_dz", "secret", "Ferme El-Amel")
	require.NoError(t, err)
	require.Equal(t, 1, store.createCalls)

	_, _, err = svc.Register(context.Background(), "djamel_dz", "other", "Ferme Nord")
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Equal(t, 1, store.createCalls, "duplicate registration must be rejected before any store write")
}

func TestRegisterRequiresAllFields(t *testing.T) {
	svc := NewService(newFakeUserStore(), fakeIssuer{}, nil)

	_, _, err := svc.Register(context.Background(), "djamel_dz", "secret", "")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, fakeIssuer{}, nil)

	registered, _, err := svc.Register(context.Background(), "djamel_dz", "secret", "Ferme El-Amel")
	require.NoError(t, err)

	user, tok, err := svc.Login(context.Background(), "djamel_dz", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, tok)

	_, _, err = svc.Login(context.Background(), "djamel_dz", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "Djamel_DZ", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "username match is case-sensitive")
}
