package chat

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Topic is one of the fixed biographical subjects the assistant can talk about.
type Topic string

const (
	TopicIntroduction Topic = "introduction"
	TopicAge          Topic = "age"
	TopicLocation     Topic = "location"
	TopicOccupation   Topic = "occupation"
	TopicGoals        Topic = "goals"
	TopicFavorites    Topic = "favorites"
	TopicHobbies      Topic = "hobbies"
)

// Topics lists every known topic in catalog order.
var Topics = []Topic{
	TopicIntroduction,
	TopicAge,
	TopicLocation,
	TopicOccupation,
	TopicGoals,
	TopicFavorites,
	TopicHobbies,
}

// Known reports whether t belongs to the closed topic set.
func (t Topic) Known() bool {
	return lo.Contains(Topics, t)
}

// TopicPatterns holds the example phrasings for one topic.
type TopicPatterns struct {
	Topic    Topic
	Examples []string
}

// Question is a clickable suggestion shown in the widget.
type Question struct {
	Text  string `yaml:"text"`
	Topic Topic  `yaml:"topic"`
}

type topicEntry struct {
	Topic    Topic    `yaml:"topic"`
	Answer   string   `yaml:"answer"`
	Patterns []string `yaml:"patterns"`
}

type catalogFile struct {
	Greeting  string       `yaml:"greeting"`
	Fallback  string       `yaml:"fallback"`
	Topics    []topicEntry `yaml:"topics"`
	Questions []Question   `yaml:"questions"`
}

// Catalog is the immutable set of patterns, answers and display questions.
// Build one with NewCatalog, LoadCatalog or DefaultCatalog; it is never
// modified afterwards and may be shared between goroutines.
type Catalog struct {
	greeting  string
	fallback  string
	patterns  []TopicPatterns
	answers   map[Topic]string
	questions []Question
	byText    map[string]Topic
}

// NewCatalog validates the inputs and returns a catalog that owns copies of them.
func NewCatalog(greeting, fallback string, patterns []TopicPatterns, answers map[Topic]string, questions []Question) (*Catalog, error) {
	if strings.TrimSpace(fallback) == "" {
		return nil, errors.New("catalog: fallback message is empty")
	}

	c := &Catalog{
		greeting: greeting,
		fallback: fallback,
		answers:  make(map[Topic]string, len(answers)),
		byText:   make(map[string]Topic, len(questions)),
	}

	seen := make(map[Topic]bool, len(patterns))
	for _, p := range patterns {
		if !p.Topic.Known() {
			return nil, errors.Errorf("catalog: unknown topic %q", p.Topic)
		}
		if seen[p.Topic] {
			return nil, errors.Errorf("catalog: topic %q listed twice", p.Topic)
		}
		seen[p.Topic] = true

		answer, ok := answers[p.Topic]
		if !ok || strings.TrimSpace(answer) == "" {
			return nil, errors.Errorf("catalog: topic %q has no answer", p.Topic)
		}
		c.answers[p.Topic] = answer
		c.patterns = append(c.patterns, TopicPatterns{
			Topic:    p.Topic,
			Examples: append([]string(nil), p.Examples...),
		})
	}

	for topic := range answers {
		if !seen[topic] {
			return nil, errors.Errorf("catalog: answer for topic %q has no patterns entry", topic)
		}
	}

	for _, q := range questions {
		if !seen[q.Topic] {
			return nil, errors.Errorf("catalog: question %q refers to unknown topic %q", q.Text, q.Topic)
		}
		if _, dup := c.byText[q.Text]; dup {
			return nil, errors.Errorf("catalog: question %q listed twice", q.Text)
		}
		c.byText[q.Text] = q.Topic
		c.questions = append(c.questions, q)
	}

	return c, nil
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse catalog %s", path)
	}
	return c, nil
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}

	patterns := make([]TopicPatterns, 0, len(f.Topics))
	answers := make(map[Topic]string, len(f.Topics))
	for _, t := range f.Topics {
		if _, dup := answers[t.Topic]; dup {
			return nil, errors.Errorf("catalog: topic %q listed twice", t.Topic)
		}
		patterns = append(patterns, TopicPatterns{Topic: t.Topic, Examples: t.Patterns})
		answers[t.Topic] = t.Answer
	}

	return NewCatalog(f.Greeting, f.Fallback, patterns, answers, f.Questions)
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(Greeting, Fallback, defaultPatterns, defaultAnswers, defaultQuestions)
	if err != nil {
		panic(errors.Wrap(err, "built-in catalog is invalid"))
	}
	return c
}

// Patterns returns the pattern catalog in iteration order.
func (c *Catalog) Patterns() []TopicPatterns {
	return c.patterns
}

// Answer returns the canned answer for a topic.
func (c *Catalog) Answer(t Topic) (string, bool) {
	a, ok := c.answers[t]
	return a, ok
}

// TopicFor maps a display question to its topic.
func (c *Catalog) TopicFor(question string) (Topic, bool) {
	t, ok := c.byText[question]
	return t, ok
}

// Questions returns the display questions in their default order.
func (c *Catalog) Questions() []string {
	return lo.Map(c.questions, func(q Question, _ int) string { return q.Text })
}

func (c *Catalog) Greeting() string { return c.greeting }

func (c *Catalog) Fallback() string { return c.fallback }
