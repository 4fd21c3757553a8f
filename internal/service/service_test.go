package service

import (
	"errors"
	"testing"

	"github.com/gumwoo/umc-pr/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAppError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, toAppError("op", nil))
	})

	t.Run("domain errors pass through", func(t *testing.T) {
		original := apperrors.New(apperrors.KindStoreNotFound, "", nil)

		assert.Same(t, original, toAppError("op", original))
	})

	t.Run("other errors become Database with the cause kept", func(t *testing.T) {
		cause := errors.New("connection refused")

		err := toAppError("internal.service.test", cause)

		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.KindDatabase, appErr.Kind)
		assert.Equal(t, "internal.service.test", appErr.Data["op"])
		assert.ErrorIs(t, err, cause)
	})
}
