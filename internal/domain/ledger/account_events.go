package ledger

import (
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeAccount = "Account"

// Event type constants
const (
	EventTypeAccountCreated = "AccountCreated"
	EventTypeAccountUpdated = "AccountUpdated"
	EventTypeAccountDeleted = "AccountDeleted"
)

// AccountEventTypes lists every event that changes the shape or labels of the tree
var AccountEventTypes = []string{
	EventTypeAccountCreated,
	EventTypeAccountUpdated,
	EventTypeAccountDeleted,
}

// AccountCreatedEvent is published when an account is added to the tree
type AccountCreatedEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID  `json:"account_id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
}

// NewAccountCreatedEvent creates a new AccountCreatedEvent
func NewAccountCreatedEvent(account *Account) *AccountCreatedEvent {
	return &AccountCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountCreated, AggregateTypeAccount, account.ID),
		AccountID:       account.ID,
		Code:            account.Code,
		Name:            account.Name,
		ParentID:        account.ParentID,
	}
}

// AccountUpdatedEvent is published when account fields change
type AccountUpdatedEvent struct {
	shared.BaseDomainEvent
	AccountID     uuid.UUID `json:"account_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	ChangedFields []string  `json:"changed_fields"`
}

// NewAccountUpdatedEvent creates a new AccountUpdatedEvent
func NewAccountUpdatedEvent(account *Account, changedFields []string) *AccountUpdatedEvent {
	return &AccountUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountUpdated, AggregateTypeAccount, account.ID),
		AccountID:       account.ID,
		Code:            account.Code,
		Name:            account.Name,
		ChangedFields:   changedFields,
	}
}

// AccountDeletedEvent is published when an account is removed
type AccountDeletedEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID  `json:"account_id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
}

// NewAccountDeletedEvent creates a new AccountDeletedEvent
func NewAccountDeletedEvent(account *Account) *AccountDeletedEvent {
	return &AccountDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountDeleted, AggregateTypeAccount, account.ID),
		AccountID:       account.ID,
		Code:            account.Code,
		Name:            account.Name,
		ParentID:        account.ParentID,
	}
}
