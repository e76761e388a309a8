package chat

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistant_AskMatches(t *testing.T) {
	a := NewAssistant(DefaultCatalog())

	reply, err := a.Ask("How old are you?")
	require.NoError(t, err)
	assert.True(t, reply.Matched)
	assert.Equal(t, TopicAge, reply.Topic)
	assert.InDelta(t, 1.0, reply.Score, 1e-9)
	assert.Equal(t, "I'm 22 years old, born in 2003. I started my coding journey when I was 18.", reply.Answer)
	assert.Equal(t, SourceFreeText, reply.Source)
	assert.Equal(t, "How old are you?", reply.Question)
}

func TestAssistant_AskFallback(t *testing.T) {
	a := NewAssistant(DefaultCatalog())

	reply, err := a.Ask("asdkjasd qweqwe")
	require.NoError(t, err)
	assert.False(t, reply.Matched)
	assert.Empty(t, reply.Topic)
	assert.Equal(t, Fallback, reply.Answer)
}

func TestAssistant_AskBlank(t *testing.T) {
	a := NewAssistant(DefaultCatalog())

	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := a.Ask(input)
		assert.ErrorIs(t, err, ErrBlankInput)
	}
}

func TestAssistant_AskSuggested(t *testing.T) {
	a := NewAssistant(DefaultCatalog())

	reply, err := a.AskSuggested("What's your hobby?")
	require.NoError(t, err)
	assert.Equal(t, TopicHobbies, reply.Topic)
	assert.Equal(t, SourceSuggestion, reply.Source)
	assert.Contains(t, reply.Answer, "basketball")

	_, err = a.AskSuggested("What's your shoe size?")
	assert.True(t, errors.Is(err, ErrUnknownQuestion))
}
