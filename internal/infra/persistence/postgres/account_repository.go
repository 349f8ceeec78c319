// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"authd/internal/domain/entity"
	"authd/internal/domain/repository"
	"authd/internal/errors"
	"authd/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// accountRepository implements repository.AccountRepository using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository returns the GORM-backed account store.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts the account. The ID is generated by PostgreSQL and written
// back along with the timestamps.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if column, ok := uniqueViolation(err); ok {
			if column == "" {
				// The generated primary key cannot collide, email is the only
				// other unique key on the table.
				column = "email"
			}

			return &repository.UniqueViolationError{Field: column, Err: err}
		}
		if isNotNullConstraintViolation(err) {
			return errors.Wrap(err, "missing required account information")
		}

		return errors.Wrap(err, "failed to create account")
	}

	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// FindByEmail looks up an account by its exact email.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel

	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.Hash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:        data.ID,
		Email:     data.Email,
		Hash:      data.PasswordHash,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
