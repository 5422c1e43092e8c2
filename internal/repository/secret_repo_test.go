package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-auth-service/internal/model"
)

func TestSecretRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	secret := model.Secret{
		ID:        "secret-1",
		OwnerID:   "user-1",
		Secret:    "the launch codes",
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO secrets`)).
		WithArgs(secret.ID, secret.OwnerID, secret.Secret, secret.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewSecretRepository(mock)
	require.NoError(t, repo.Create(context.Background(), secret))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSecretRepository_ListByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM secrets WHERE owner_id = $1`)).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_id", "secret", "created_at"}).
			AddRow("secret-1", "user-1", "first", created).
			AddRow("secret-2", "user-1", "second", created))

	repo := NewSecretRepository(mock)
	secrets, err := repo.ListByOwner(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, secrets, 2)
	assert.Equal(t, "first", secrets[0].Secret)
	assert.Equal(t, "second", secrets[1].Secret)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSecretRepository_FindByID_OwnerChecked(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM secrets WHERE id = $1 AND owner_id = $2`)).
		WithArgs("secret-1", "someone-else").
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_id", "secret", "created_at"}))

	repo := NewSecretRepository(mock)
	_, err = repo.FindByID(context.Background(), "secret-1", "someone-else")
	assert.ErrorIs(t, err, model.ErrSecretNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
