package chat

import "github.com/samber/lo"

// SuggestionCount is how many suggestions the widget shows at once.
const SuggestionCount = 3

// Suggestions rotates display questions: used ones leave the queue and come
// back, oldest first, once the queue runs short. Not safe for concurrent use.
type Suggestions struct {
	queue []string
	used  []string
}

// NewSuggestions starts a queue in the catalog's question order.
func NewSuggestions(c *Catalog) *Suggestions {
	return &Suggestions{queue: c.Questions()}
}

// RestoreSuggestions rebuilds a queue from client-held state. Questions the
// catalog does not know are dropped, as are repeats. Catalog questions missing
// from both lists are appended to the queue.
func RestoreSuggestions(c *Catalog, queue, used []string) *Suggestions {
	known := func(q string, _ int) bool {
		_, ok := c.TopicFor(q)
		return ok
	}

	s := &Suggestions{
		queue: lo.Uniq(lo.Filter(queue, known)),
	}
	s.used = lo.Without(lo.Uniq(lo.Filter(used, known)), s.queue...)

	missing := lo.Without(c.Questions(), append(append([]string(nil), s.queue...), s.used...)...)
	s.queue = append(s.queue, missing...)
	s.refill()
	return s
}

// Current returns the suggestions to display.
func (s *Suggestions) Current() []string {
	n := min(SuggestionCount, len(s.queue))
	return append([]string(nil), s.queue[:n]...)
}

// Use records that question was asked.
func (s *Suggestions) Use(question string) {
	if !lo.Contains(s.queue, question) {
		return
	}
	s.queue = lo.Without(s.queue, question)
	s.used = append(s.used, question)
	s.refill()
}

func (s *Suggestions) refill() {
	for len(s.queue) < SuggestionCount && len(s.used) > 0 {
		s.queue = append(s.queue, s.used[0])
		s.used = s.used[1:]
	}
}

// Queue returns the pending questions in order.
func (s *Suggestions) Queue() []string { return append([]string(nil), s.queue...) }

// Used returns the asked questions, oldest first.
func (s *Suggestions) Used() []string { return append([]string(nil), s.used...) }
