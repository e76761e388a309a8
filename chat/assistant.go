package chat

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrBlankInput      = errors.New("blank question")
	ErrUnknownQuestion = errors.New("unknown question")
)

// Source says how a question reached the assistant.
type Source string

const (
	SourceFreeText   Source = "free_text"
	SourceSuggestion Source = "suggestion"
)

// Reply is one answered question.
type Reply struct {
	Question string  `json:"question"`
	Topic    Topic   `json:"topic,omitempty"`
	Matched  bool    `json:"matched"`
	Score    float64 `json:"score"`
	Answer   string  `json:"answer"`
	Source   Source  `json:"source"`
}

// Assistant answers questions from a catalog.
type Assistant struct {
	catalog *Catalog
}

func NewAssistant(c *Catalog) *Assistant {
	return &Assistant{catalog: c}
}

func (a *Assistant) Catalog() *Catalog {
	return a.catalog
}

// Ask answers free text. Unmatched input gets the catalog's fallback message.
func (a *Assistant) Ask(input string) (Reply, error) {
	if strings.TrimSpace(input) == "" {
		return Reply{}, ErrBlankInput
	}

	reply := Reply{
		Question: input,
		Answer:   a.catalog.Fallback(),
		Source:   SourceFreeText,
	}

	r, ok := Best(input, a.catalog.Patterns())
	if !ok {
		return reply, nil
	}

	answer, _ := a.catalog.Answer(r.Topic)
	reply.Topic = r.Topic
	reply.Matched = true
	reply.Score = r.Score
	reply.Answer = answer
	return reply, nil
}

// AskSuggested answers one of the catalog's display questions.
func (a *Assistant) AskSuggested(question string) (Reply, error) {
	topic, ok := a.catalog.TopicFor(question)
	if !ok {
		return Reply{}, errors.Wrapf(ErrUnknownQuestion, "%q", question)
	}

	answer, _ := a.catalog.Answer(topic)
	return Reply{
		Question: question,
		Topic:    topic,
		Matched:  true,
		Score:    1,
		Answer:   answer,
		Source:   SourceSuggestion,
	}, nil
}
