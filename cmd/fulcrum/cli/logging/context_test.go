package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithRunID(t *testing.T) {
	ctx := context.Background()
	ctx = WithRunID(ctx, "2026-07-30-run-1")

	require.Equal(t, "2026-07-30-run-1", RunIDFromContext(ctx))
}

func TestRunIDFromContextEmpty(t *testing.T) {
	require.Equal(t, "", RunIDFromContext(context.Background()))
}

func TestAttrsFromContextIncludesRunID(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")

	attrs := attrsFromContext(ctx, "")
	require.Len(t, attrs, 1)
	require.Equal(t, "run_id", attrs[0].Key)
	require.Equal(t, "run-123", attrs[0].Value.String())
}

func TestAttrsFromContextSkipsRunIDWhenGlobalSet(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")

	attrs := attrsFromContext(ctx, "global-run")
	require.Empty(t, attrs)
}
