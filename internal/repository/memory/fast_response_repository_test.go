package memory

import (
	"context"
	"testing"

	"sales-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastResponseExactMatch(t *testing.T) {
	repo := NewFastResponseRepository()
	ctx := context.Background()

	err := repo.Add(ctx, "tracerpay rates", &store.FastResponse{Message: "<h2>TracerPay</h2>"})
	require.NoError(t, err)

	resp, found := repo.Get(ctx, "TracerPay Rates")
	require.True(t, found, "lookup must be case-insensitive")
	assert.Equal(t, "<h2>TracerPay</h2>", resp.Message)
}

func TestFastResponsePartialMatch(t *testing.T) {
	repo := NewFastResponseRepository()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "compare payment processors", &store.FastResponse{Message: "comparison"}))

	// Two of three key words present
	resp, found := repo.Get(ctx, "can you compare the processors for me")
	require.True(t, found)
	assert.Equal(t, "comparison", resp.Message)

	_, found = repo.Get(ctx, "completely unrelated question")
	assert.False(t, found)
}

func TestFastResponseSeedCatalogue(t *testing.T) {
	repo := NewFastResponseRepository()
	ctx := context.Background()

	require.NoError(t, SeedFastResponses(ctx, repo))

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, len(DefaultFastResponses()))

	resp, found := repo.Get(ctx, "calculate processing rates")
	require.True(t, found)
	assert.Contains(t, resp.Message, "Processing Rate Calculator")
}
