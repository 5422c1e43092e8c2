package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-auth-service/internal/model"
)

type SecretStore interface {
	Create(ctx context.Context, s model.Secret) error
	ListByOwner(ctx context.Context, ownerID string) ([]model.Secret, error)
	FindByID(ctx context.Context, id string, ownerID string) (model.Secret, error)
}

// SecretService stores per-account secrets. Secrets are scoped to the
// authenticated username carried in the request identity.
type SecretService struct {
	secrets SecretStore
	users   UserStore
}

func NewSecretService(secrets SecretStore, users UserStore) *SecretService {
	return &SecretService{secrets: secrets, users: users}
}

func (s *SecretService) Create(ctx context.Context, ownerUsername string, secretText string) (model.Secret, error) {
	if strings.TrimSpace(secretText) == "" {
		return model.Secret{}, model.ErrInvalidInput
	}

	owner, err := s.users.FindByUsername(ctx, ownerUsername)
	if err != nil {
		return model.Secret{}, err
	}

	secret := model.Secret{
		ID:        uuid.NewString(),
		OwnerID:   owner.ID,
		Secret:    secretText,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.secrets.Create(ctx, secret); err != nil {
		return model.Secret{}, err
	}

	return secret, nil
}

func (s *SecretService) List(ctx context.Context, ownerUsername string) ([]model.Secret, error) {
	owner, err := s.users.FindByUsername(ctx, ownerUsername)
	if err != nil {
		return nil, err
	}

	return s.secrets.ListByOwner(ctx, owner.ID)
}

func (s *SecretService) Get(ctx context.Context, ownerUsername string, secretID string) (model.Secret, error) {
	owner, err := s.users.FindByUsername(ctx, ownerUsername)
	if err != nil {
		return model.Secret{}, err
	}

	return s.secrets.FindByID(ctx, secretID, owner.ID)
}
