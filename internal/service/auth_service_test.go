package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-auth-service/internal/model"
	"go-auth-service/internal/password"
	"go-auth-service/internal/token"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}}
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[strings.ToLower(username)]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.users[strings.ToLower(username)]
	return ok, nil
}

func (f *fakeUserStore) Create(_ context.Context, u model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.ToLower(u.Username)
	if _, ok := f.users[key]; ok {
		return model.ErrUserAlreadyExists
	}
	f.users[key] = u
	return nil
}

func (f *fakeUserStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

// lyingUserStore reports every username as absent so inserts always reach
// the uniqueness backstop, mimicking two registrations racing past the
// advisory check.
type lyingUserStore struct {
	fakeUserStore
}

func (l *lyingUserStore) ExistsByUsername(context.Context, string) (bool, error) {
	return false, nil
}

func newTestAuthService(users UserStore) (*AuthService, *token.Codec) {
	hasher := password.NewHasher(bcrypt.MinCost, 2)
	codec := token.NewCodec(token.StaticSecret("test-secret"), 24*time.Hour)
	return NewAuthService(users, hasher, codec), codec
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeUserStore()
	svc, codec := newTestAuthService(store)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, registered.ID)
	assert.Equal(t, "alice", registered.Username)
	assert.Equal(t, "User registered successfully", registered.Message)

	tokens, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.Token)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Equal(t, int64((24*time.Hour).Seconds()), tokens.ExpiresIn)

	subject, err := codec.Verify(tokens.Token, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestRegister_NeverStoresPlaintext(t *testing.T) {
	store := newFakeUserStore()
	svc, _ := newTestAuthService(store)

	_, err := svc.Register(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	stored, err := store.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotContains(t, stored.PasswordHash, "secret123")
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	svc, _ := newTestAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other-password")
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)
	assert.Equal(t, 1, store.count())
}

func TestRegister_UniquenessBackstop(t *testing.T) {
	store := &lyingUserStore{fakeUserStore: *newFakeUserStore()}
	svc, _ := newTestAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	// The advisory check said the name was free; the store's constraint
	// still rejects the duplicate insert.
	_, err = svc.Register(ctx, "alice", "secret123")
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)
}

func TestRegister_InvalidInput(t *testing.T) {
	svc, _ := newTestAuthService(newFakeUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "secret123")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = svc.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestLogin_UniformFailure(t *testing.T) {
	store := newFakeUserStore()
	svc, _ := newTestAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "alice", "wrong")
	_, unknownUser := svc.Login(ctx, "nobody", "secret123")

	// Wrong password and unknown username are indistinguishable so the
	// login endpoint cannot be used to enumerate usernames.
	assert.ErrorIs(t, wrongPassword, model.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, model.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownUser)
}
