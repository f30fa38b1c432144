package kernel_test

import (
	"testing"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRandomTrackingRef(t *testing.T) {
	ref := kernel.NewRandomTrackingRef()

	require.NoError(t, ref.Validate())
	assert.Regexp(t, `^TRN\d{6}$`, ref.String())
}

func TestTrackingRefFromString(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ref, err := kernel.TrackingRefFromString("TRN042137")
		require.NoError(t, err)
		assert.Equal(t, "TRN042137", ref.String())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := kernel.TrackingRefFromString("")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("wrong_prefix", func(t *testing.T) {
		_, err := kernel.TrackingRefFromString("ABC123456")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("wrong_digit_count", func(t *testing.T) {
		_, err := kernel.TrackingRefFromString("TRN1234")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestTrackingRef_Validate_ZeroValue(t *testing.T) {
	var ref kernel.TrackingRef
	err := ref.Validate()
	require.Error(t, err)
	assert.Equal(t, kernel.ErrTrackingRefIsNotConstructed, err)
}

func TestTrackingRef_IsEqual(t *testing.T) {
	a, err := kernel.TrackingRefFromString("TRN000001")
	require.NoError(t, err)
	b, err := kernel.TrackingRefFromString("TRN000001")
	require.NoError(t, err)
	c, err := kernel.TrackingRefFromString("TRN000002")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
