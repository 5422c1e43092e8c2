package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-auth-service/internal/model"
	"go-auth-service/internal/password"
	"go-auth-service/internal/token"
)

// UserStore is the credential-store collaborator the service reads and
// appends to. *repository.UserRepository implements it.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, u model.User) error
}

type AuthService struct {
	users  UserStore
	hasher *password.Hasher
	codec  *token.Codec
}

func NewAuthService(users UserStore, hasher *password.Hasher, codec *token.Codec) *AuthService {
	return &AuthService{users: users, hasher: hasher, codec: codec}
}

// Register hashes the password and stores a new account. The existence
// check is a fast path only; two registrations racing past it are settled
// by the store's unique constraint, which also surfaces as
// model.ErrUserAlreadyExists.
func (s *AuthService) Register(ctx context.Context, username string, plaintext string) (model.RegisteredUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || plaintext == "" {
		return model.RegisteredUser{}, model.ErrInvalidInput
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return model.RegisteredUser{}, err
	}
	if exists {
		return model.RegisteredUser{}, model.ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(ctx, plaintext)
	if err != nil {
		return model.RegisteredUser{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.RegisteredUser{}, err
	}

	return model.RegisteredUser{
		ID:       user.ID,
		Username: user.Username,
		Message:  "User registered successfully",
	}, nil
}

// Login verifies the credentials and issues a signed token for the
// username subject. Unknown usernames and wrong passwords both come back
// as model.ErrInvalidCredentials so the response cannot be used to probe
// which usernames exist.
func (s *AuthService) Login(ctx context.Context, username string, plaintext string) (model.TokenResponse, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.TokenResponse{}, model.ErrInvalidCredentials
		}
		return model.TokenResponse{}, err
	}

	if !s.hasher.Verify(ctx, plaintext, user.PasswordHash) {
		return model.TokenResponse{}, model.ErrInvalidCredentials
	}

	issued, err := s.codec.Issue(user.Username, time.Now().UTC())
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("issue token: %w", err)
	}

	return model.TokenResponse{
		Token:     issued,
		TokenType: "Bearer",
		ExpiresIn: int64(s.codec.TTL().Seconds()),
	}, nil
}
