package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRootCode(t *testing.T) {
	tests := []struct {
		name string
		last string
		want string
	}{
		{"first root", "", "1000"},
		{"after first root", "1000", "2000"},
		{"after fourth root", "4000", "5000"},
		{"rounds down partial code", "2500", "3000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextRootCode(tt.last)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects non-numeric code", func(t *testing.T) {
		_, err := NextRootCode("ABC")
		require.Error(t, err)
	})
}

func TestNextChildCode(t *testing.T) {
	tests := []struct {
		name   string
		parent string
		last   string
		want   string
	}{
		{"first child of root", "1000", "", "1001"},
		{"next child of root", "1000", "1001", "1002"},
		{"child of root keeps leading digit", "3000", "3041", "3042"},
		{"first child of level one", "1001", "", "1001001"},
		{"next child of level one", "1001", "1001009", "1001010"},
		{"deep child", "1001001", "1001001099", "1001001100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextChildCode(tt.parent, tt.last)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsDescendantCode(tt.parent, got))
		})
	}

	t.Run("rejects the thousandth sibling", func(t *testing.T) {
		_, err := NextChildCode("1000", "1999")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrCodeSpaceExhausted))

		_, err = NextChildCode("1001", "1001999")
		assert.True(t, errors.Is(err, ErrCodeSpaceExhausted))
	})

	t.Run("rejects corrupt sibling code", func(t *testing.T) {
		_, err := NextChildCode("1001", "10x1")
		require.Error(t, err)
	})

	t.Run("rejects empty parent code", func(t *testing.T) {
		_, err := NextChildCode("", "")
		require.Error(t, err)
	})
}

func TestNextCode(t *testing.T) {
	code, err := NextCode(nil, "2000")
	require.NoError(t, err)
	assert.Equal(t, "3000", code)

	parent := &Account{Code: "2000"}
	code, err = NextCode(parent, "")
	require.NoError(t, err)
	assert.Equal(t, "2001", code)
}

func TestIsRootCode(t *testing.T) {
	assert.True(t, IsRootCode("1000"))
	assert.True(t, IsRootCode("4000"))
	assert.False(t, IsRootCode("1001"))
	assert.False(t, IsRootCode("10000"))
	assert.False(t, IsRootCode("A000"))
}

func TestIsDescendantCode(t *testing.T) {
	assert.True(t, IsDescendantCode("1000", "1001"))
	assert.True(t, IsDescendantCode("1000", "1001001"))
	assert.False(t, IsDescendantCode("1000", "1000"))
	assert.False(t, IsDescendantCode("1000", "2001"))
	assert.True(t, IsDescendantCode("1001", "1001001"))
	assert.False(t, IsDescendantCode("1001", "1002001"))
	assert.False(t, IsDescendantCode("1001", "1001"))
}
