package installer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithSpinnerReturnsWorkError(t *testing.T) {
	wantErr := errors.New("fetch failed")
	err := WithSpinner("working...", func() error { return wantErr })
	require.ErrorIs(t, err, wantErr)
}

func TestWithSpinnerNilOnSuccess(t *testing.T) {
	require.NoError(t, WithSpinner("working...", func() error { return nil }))
}
