package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ai-assist-service/service"
)

func TestFallbackAnswerTopicMatching(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	prayer := service.FallbackAnswer("When is the next PRAYER?", "en")
	require.Contains(prayer, "prayer times screen")

	qibla := service.FallbackAnswer("which direction should i face", "en")
	require.Contains(qibla, "compass")

	generic := service.FallbackAnswer("tell me something", "en")
	require.Contains(generic, "try again later")
}

func TestFallbackAnswerTopicOrder(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	// both topics match, the prayer topic is declared first
	answer := service.FallbackAnswer("prayer direction", "en")
	require.Contains(answer, "prayer times screen")
}

func TestFallbackAnswerLanguages(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	en := service.FallbackAnswer("anything", "en")
	ur := service.FallbackAnswer("anything", "ur")
	ar := service.FallbackAnswer("anything", "ar")
	require.NotEmpty(en)
	require.NotEmpty(ur)
	require.NotEmpty(ar)
	require.NotEqualValues(en, ur)
	require.NotEqualValues(en, ar)

	require.EqualValues(en, service.FallbackAnswer("anything", "fr"))
	require.EqualValues(en, service.FallbackAnswer("anything", ""))
	require.EqualValues(ur, service.FallbackAnswer("anything", " UR "))
}
