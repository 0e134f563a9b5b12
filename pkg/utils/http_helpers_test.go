package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "courier-system/pkg/errors"
)

func TestParseUint64Slice(t *testing.T) {
	t.Run("обычный список", func(t *testing.T) {
		got, err := ParseUint64Slice([]string{"1", "7", "42"})
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 7, 42}, got)
	})

	t.Run("пустые элементы пропускаются", func(t *testing.T) {
		got, err := ParseUint64Slice([]string{" 7 ", "", "  "})
		require.NoError(t, err)
		assert.Equal(t, []uint64{7}, got)
	})

	t.Run("мусор дает ошибку валидации", func(t *testing.T) {
		_, err := ParseUint64Slice([]string{"7", "abc"})
		require.Error(t, err)
		var invalid *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})
}
