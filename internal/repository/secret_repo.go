package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"go-auth-service/internal/model"
)

type SecretRepository struct {
	db querier
}

func NewSecretRepository(db querier) *SecretRepository {
	return &SecretRepository{db: db}
}

func (r *SecretRepository) Create(ctx context.Context, s model.Secret) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO secrets (id, owner_id, secret, created_at)
		 VALUES ($1, $2, $3, $4)`,
		s.ID, s.OwnerID, s.Secret, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create secret: %w", err)
	}
	return nil
}

func (r *SecretRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Secret, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, owner_id, secret, created_at
		 FROM secrets WHERE owner_id = $1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list secrets: %w", err)
	}
	defer rows.Close()

	secrets := make([]model.Secret, 0)
	for rows.Next() {
		var s model.Secret
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Secret, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan secret: %w", err)
		}
		secrets = append(secrets, s)
	}
	return secrets, rows.Err()
}

// FindByID is owner-checked: a secret that exists but belongs to another
// account is reported as not found.
func (r *SecretRepository) FindByID(ctx context.Context, id string, ownerID string) (model.Secret, error) {
	var s model.Secret
	err := r.db.QueryRow(ctx,
		`SELECT id, owner_id, secret, created_at
		 FROM secrets WHERE id = $1 AND owner_id = $2`, id, ownerID).
		Scan(&s.ID, &s.OwnerID, &s.Secret, &s.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Secret{}, model.ErrSecretNotFound
	}
	if err != nil {
		return model.Secret{}, fmt.Errorf("find secret by id: %w", err)
	}
	return s, nil
}
