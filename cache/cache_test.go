package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ai-assist-service/cache"
)

func TestGetBasic(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	answers := cache.NewAnswers(24 * time.Hour)
	answers.Set("key", "answer")

	answer, ok := answers.Get("key")
	require.True(ok)
	require.EqualValues("answer", answer)

	_, ok = answers.Get("key2")
	require.False(ok)
}

func TestGetExpired(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	answers := cache.NewAnswers(500 * time.Millisecond)
	answers.Set("key", "answer")

	time.Sleep(1 * time.Second)

	answer, ok := answers.Get("key")
	require.False(ok)
	require.Empty(answer)
}

func TestDisabled(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	answers := cache.NewAnswers(0)
	answers.Set("key", "answer")

	_, ok := answers.Get("key")
	require.False(ok)
}
