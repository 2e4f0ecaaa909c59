package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	require.Nil(t, WrapError("ctx", nil))

	cause := errors.New("boom")
	err := WrapError("reading header", cause)
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading header")
	require.Contains(t, err.Error(), "boom")
	require.ErrorIs(t, err, cause)
}

func TestWrapOffset(t *testing.T) {
	require.Nil(t, WrapOffset("ctx", 10, nil))

	cause := errors.New("short read")
	err := WrapOffset("parsing property", 128, cause)
	require.Error(t, err)
	require.Contains(t, err.Error(), "offset 128")

	var ce *CodecError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, int64(128), ce.Offset)
}
