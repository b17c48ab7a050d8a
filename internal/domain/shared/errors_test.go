package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches wrapped error with same code", func(t *testing.T) {
		err := fmt.Errorf("find account: %w", NewDomainError("NOT_FOUND", "Account missing"))
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("does not match different code", func(t *testing.T) {
		err := NewDomainError("ALREADY_EXISTS", "duplicate")
		assert.False(t, errors.Is(err, ErrNotFound))
	})
}

func TestAsDomainError(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewDomainErrorWithDetails("USAGE_CONFLICT", "blocked", []string{"a", "b"}))

	domainErr, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, "USAGE_CONFLICT", domainErr.Code)
	assert.Equal(t, []string{"a", "b"}, domainErr.Details)

	_, ok = AsDomainError(errors.New("plain"))
	assert.False(t, ok)
}

func TestAuditedAggregateRoot_Touch(t *testing.T) {
	creator := NewBaseEntity().ID
	root := NewAuditedAggregateRoot(&creator)
	assert.Equal(t, 1, root.GetVersion())
	assert.Equal(t, &creator, root.UpdatedBy)

	editor := NewBaseEntity().ID
	root.Touch(&editor)
	assert.Equal(t, 2, root.GetVersion())
	assert.Equal(t, &editor, root.UpdatedBy)
	assert.Equal(t, &creator, root.CreatedBy)

	root.Touch(nil)
	assert.Equal(t, 3, root.GetVersion())
	assert.Equal(t, &editor, root.UpdatedBy)
}
