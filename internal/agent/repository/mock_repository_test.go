package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRepositoryFetch(t *testing.T) {
	repo := NewMockRepository()
	assert.Equal(t, "mock", repo.Name())

	articles, err := repo.Fetch(context.Background(), "acme corp", 10, FetchOptions{})
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "Acme corp expands sustainability efforts", articles[0].Title)
	assert.Equal(t, "https://example.com/sustainability", articles[0].URL)
	assert.NotNil(t, articles[0].PublishedAt)
	assert.Contains(t, articles[1].Content, "acme corp")
}

func TestMockRepositoryHonorsLimit(t *testing.T) {
	repo := NewMockRepository()

	articles, err := repo.Fetch(context.Background(), "acme", 1, FetchOptions{})
	require.NoError(t, err)
	assert.Len(t, articles, 1)
}
