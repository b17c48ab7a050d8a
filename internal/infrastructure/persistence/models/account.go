package models

import (
	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountModel is the persistence model for the Account domain entity.
type AccountModel struct {
	AggregateModel
	Name               string        `gorm:"type:varchar(255);not null;index"`
	Code               string        `gorm:"type:varchar(64);not null;uniqueIndex:idx_accounts_code"`
	ParentID           *uuid.UUID    `gorm:"type:uuid;index"`
	Nature             ledger.Nature `gorm:"type:varchar(10);not null"`
	AccountType        *string       `gorm:"type:varchar(20)"`
	CostCenterRequired bool          `gorm:"column:cc_required;not null"`
	CreatedBy          *uuid.UUID    `gorm:"type:uuid"`
	UpdatedBy          *uuid.UUID    `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *ledger.Account {
	accountType := ledger.AccountTypeNone
	if m.AccountType != nil {
		accountType = ledger.AccountType(*m.AccountType)
	}
	return &ledger.Account{
		AuditedAggregateRoot: shared.AuditedAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: m.BaseModel.ToDomain(),
				Version:    m.Version,
			},
			CreatedBy: m.CreatedBy,
			UpdatedBy: m.UpdatedBy,
		},
		Name:               m.Name,
		Code:               m.Code,
		ParentID:           m.ParentID,
		Nature:             m.Nature,
		AccountType:        accountType,
		CostCenterRequired: m.CostCenterRequired,
	}
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *ledger.Account) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Name = a.Name
	m.Code = a.Code
	m.ParentID = a.ParentID
	m.Nature = a.Nature
	m.AccountType = a.AccountType.Ptr()
	m.CostCenterRequired = a.CostCenterRequired
	m.CreatedBy = a.CreatedBy
	m.UpdatedBy = a.UpdatedBy
}

// AccountModelFromDomain creates a new persistence model from a domain Account entity.
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// AccountsToDomain converts a slice of models, preserving order.
func AccountsToDomain(in []AccountModel) []ledger.Account {
	out := make([]ledger.Account, len(in))
	for i := range in {
		out[i] = *in[i].ToDomain()
	}
	return out
}
