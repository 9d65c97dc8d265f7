package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePositiveIntValid(t *testing.T) {
	n, err := parsePositiveInt("3")
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestParsePositiveIntZero(t *testing.T) {
	n, err := parsePositiveInt("0")
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestParsePositiveIntNegative(t *testing.T) {
	_, err := parsePositiveInt("-1")
	require.Error(t, err)
}

func TestParsePositiveIntNotANumber(t *testing.T) {
	_, err := parsePositiveInt("abc")
	require.Error(t, err)
}
