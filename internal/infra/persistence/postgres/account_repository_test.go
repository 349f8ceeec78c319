package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"authd/internal/domain/entity"
	"authd/internal/domain/repository"
	"authd/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	insertAccountSQL = regexp.QuoteMeta(`INSERT INTO "accounts" ("email","hash","created_at","updated_at") VALUES ($1,$2,$3,$4) RETURNING "id"`)
	selectAccountSQL = regexp.QuoteMeta(`SELECT * FROM "accounts" WHERE email = $1`)
)

func newRepoWithMock(t *testing.T) (repository.AccountRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return NewAccountRepository(db), mock
}

func TestAccountRepository_Create_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id := uuid.New()

	mock.ExpectQuery(insertAccountSQL).
		WithArgs("a@x.com", "$argon2id$hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	account := &entity.Account{Email: "a@x.com", PasswordHash: "$argon2id$hash"}
	require.NoError(t, repo.Create(context.Background(), account))

	assert.Equal(t, id, account.ID)
	assert.False(t, account.CreatedAt.IsZero())
	assert.False(t, account.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertAccountSQL).
		WillReturnError(&pgconn.PgError{
			Code:           pgUniqueViolation,
			ConstraintName: "accounts_email_key",
			Detail:         "Key (email)=(a@x.com) already exists.",
		})

	err := repo.Create(context.Background(), &entity.Account{Email: "a@x.com", PasswordHash: "h"})

	var uniqueErr *repository.UniqueViolationError
	require.True(t, errors.As(err, &uniqueErr), "got %v", err)
	assert.Equal(t, "email", uniqueErr.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create_TranslatedDuplicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertAccountSQL).WillReturnError(gorm.ErrDuplicatedKey)

	err := repo.Create(context.Background(), &entity.Account{Email: "a@x.com", PasswordHash: "h"})

	var uniqueErr *repository.UniqueViolationError
	require.True(t, errors.As(err, &uniqueErr))
	assert.Equal(t, "email", uniqueErr.Field)
}

func TestAccountRepository_Create_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	dbDown := errors.New("db down")

	mock.ExpectQuery(insertAccountSQL).WillReturnError(dbDown)

	err := repo.Create(context.Background(), &entity.Account{Email: "a@x.com", PasswordHash: "h"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, dbDown))
	var uniqueErr *repository.UniqueViolationError
	assert.False(t, errors.As(err, &uniqueErr))
}

func TestAccountRepository_FindByEmail_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id := uuid.New()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "email", "hash", "created_at", "updated_at"}).
		AddRow(id.String(), "a@x.com", "$argon2id$hash", created, created)
	mock.ExpectQuery(selectAccountSQL).WillReturnRows(rows)

	account, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)

	assert.Equal(t, id, account.ID)
	assert.Equal(t, "a@x.com", account.Email)
	assert.Equal(t, "$argon2id$hash", account.PasswordHash)
	assert.Equal(t, created, account.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByEmail_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectAccountSQL).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hash", "created_at", "updated_at"}))

	account, err := repo.FindByEmail(context.Background(), "b@x.com")

	assert.Nil(t, account)
	assert.True(t, errors.Is(err, repository.ErrAccountNotFound))
}

func TestAccountRepository_FindByEmail_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	dbDown := errors.New("db down")

	mock.ExpectQuery(selectAccountSQL).WillReturnError(dbDown)

	account, err := repo.FindByEmail(context.Background(), "a@x.com")

	assert.Nil(t, account)
	assert.True(t, errors.Is(err, dbDown))
	assert.False(t, errors.Is(err, repository.ErrAccountNotFound))
}
