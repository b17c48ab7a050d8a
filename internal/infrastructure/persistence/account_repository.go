package persistence

import (
	"context"
	"errors"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByIDForUpdate finds an account by its ID and locks the row for the rest of the transaction
func (r *GormAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	return r.first(r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id))
}

// FindByName finds an account whose name matches exactly
func (r *GormAccountRepository) FindByName(ctx context.Context, name string) (*ledger.Account, error) {
	return r.first(r.db.WithContext(ctx).Where("name = ?", name).Order("code ASC"))
}

// ExistsByNameFold checks whether an account other than excludeID carries name, ignoring case
func (r *GormAccountRepository) ExistsByNameFold(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.AccountModel{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindRoots finds all root accounts ordered by code
func (r *GormAccountRepository) FindRoots(ctx context.Context) ([]ledger.Account, error) {
	return r.find(r.db.WithContext(ctx).Where("parent_id IS NULL"))
}

// FindAll finds every account ordered by code
func (r *GormAccountRepository) FindAll(ctx context.Context) ([]ledger.Account, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindChildrenOf finds the direct children of all given parents ordered by code
func (r *GormAccountRepository) FindChildrenOf(ctx context.Context, parentIDs []uuid.UUID) ([]ledger.Account, error) {
	if len(parentIDs) == 0 {
		return []ledger.Account{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("parent_id IN ?", parentIDs))
}

// FindLastChildCode returns the highest code under parentID, or among roots when parentID is nil
func (r *GormAccountRepository) FindLastChildCode(ctx context.Context, parentID *uuid.UUID) (string, error) {
	query := r.db.WithContext(ctx).Model(&models.AccountModel{})
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	var codes []string
	if err := query.
		Order("LENGTH(code) DESC, code DESC").
		Limit(1).
		Pluck("code", &codes).Error; err != nil {
		return "", err
	}
	if len(codes) == 0 {
		return "", nil
	}
	return codes[0], nil
}

// CountChildren counts the direct children of an account
func (r *GormAccountRepository) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("parent_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an account.
// A unique index violation is reported as shared.ErrAlreadyExists.
func (r *GormAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	model := models.AccountModelFromDomain(account)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	account.UpdatedAt = model.UpdatedAt
	account.CreatedAt = model.CreatedAt
	return nil
}

// Delete permanently deletes an account
func (r *GormAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AccountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormAccountRepository) first(query *gorm.DB) (*ledger.Account, error) {
	var model models.AccountModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormAccountRepository) find(query *gorm.DB) ([]ledger.Account, error) {
	var rows []models.AccountModel
	if err := query.Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return models.AccountsToDomain(rows), nil
}

// Ensure GormAccountRepository implements AccountRepository
var _ ledger.AccountRepository = (*GormAccountRepository)(nil)
