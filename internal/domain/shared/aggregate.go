package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates a new base entity with a time-ordered ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        newEntityID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newEntityID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// AggregateRoot is implemented by aggregates that record domain events
// until the surrounding transaction commits
type AggregateRoot interface {
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version      int
	domainEvents []DomainEvent
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}

// AuditedAggregateRoot extends BaseAggregateRoot with the ids of the users
// that created and last changed the aggregate.
type AuditedAggregateRoot struct {
	BaseAggregateRoot
	CreatedBy *uuid.UUID
	UpdatedBy *uuid.UUID
}

// NewAuditedAggregateRoot creates a new aggregate root stamped with its creator
func NewAuditedAggregateRoot(createdBy *uuid.UUID) AuditedAggregateRoot {
	return AuditedAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		CreatedBy:         createdBy,
		UpdatedBy:         createdBy,
	}
}

// Touch records a modification by the given user
func (a *AuditedAggregateRoot) Touch(updatedBy *uuid.UUID) {
	a.UpdatedAt = time.Now()
	if updatedBy != nil {
		a.UpdatedBy = updatedBy
	}
	a.IncrementVersion()
}
