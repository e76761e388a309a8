package chat

import (
	"math"
	"strings"

	"github.com/samber/lo"
)

// MatchThreshold is the score a pattern has to strictly exceed to win.
const MatchThreshold = 0.3

var punctuation = strings.NewReplacer(".", "", ",", "", "?", "", "!", "")

// Tokenize lowercases s, drops . , ? ! and splits on single spaces.
// Empty tokens are kept, so "a  b" yields three tokens.
func Tokenize(s string) []string {
	return strings.Split(punctuation.Replace(strings.ToLower(s)), " ")
}

// Similarity is the cosine of the binary word-presence vectors of a and b.
func Similarity(a, b string) float64 {
	return cosine(Tokenize(a), Tokenize(b))
}

func cosine(wordsA, wordsB []string) float64 {
	vocab := lo.Uniq(append(append(make([]string, 0, len(wordsA)+len(wordsB)), wordsA...), wordsB...))

	vecA := make([]float64, len(vocab))
	vecB := make([]float64, len(vocab))
	for i, w := range vocab {
		if lo.Contains(wordsA, w) {
			vecA[i] = 1
		}
		if lo.Contains(wordsB, w) {
			vecB[i] = 1
		}
	}

	var dot, sumA, sumB float64
	for i := range vocab {
		dot += vecA[i] * vecB[i]
		sumA += vecA[i] * vecA[i]
		sumB += vecB[i] * vecB[i]
	}

	magA, magB := math.Sqrt(sumA), math.Sqrt(sumB)
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (magA * magB)
}

// Result describes the winning pattern of a match.
type Result struct {
	Topic   Topic
	Pattern string
	Score   float64
}

// Best scores input against every pattern in order and returns the first
// pattern with the highest score above MatchThreshold.
func Best(input string, patterns []TopicPatterns) (Result, bool) {
	words := Tokenize(input)

	best := Result{Score: MatchThreshold}
	found := false
	for _, tp := range patterns {
		for _, p := range tp.Examples {
			score := cosine(words, Tokenize(p))
			if score > best.Score {
				best = Result{Topic: tp.Topic, Pattern: p, Score: score}
				found = true
			}
		}
	}

	if !found {
		return Result{}, false
	}
	return best, true
}

// Match returns the topic whose pattern is most similar to input.
func Match(input string, patterns []TopicPatterns) (Topic, bool) {
	r, ok := Best(input, patterns)
	return r.Topic, ok
}
