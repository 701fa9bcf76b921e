package sentiment

import (
	"math"
	"strings"
)

// Label is a three-way sentiment classification.
type Label string

const (
	Negative Label = "negative"
	Neutral  Label = "neutral"
	Positive Label = "positive"
)

// Compound score thresholds. Scores inside (-0.05, 0.05) read as neutral.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// normalizationAlpha dampens the summed valence into [-1, 1].
const normalizationAlpha = 15.0

// Classifier performs lexicon-based sentiment analysis. Stateless per call;
// construct once and share freely.
type Classifier struct {
	lexicon map[string]float64
}

// NewClassifier creates new sentiment classifier
func NewClassifier() *Classifier {
	return &Classifier{
		lexicon: buildLexicon(),
	}
}

// CompoundScore computes the compound polarity of text in [-1, 1]. Empty or
// whitespace-only text scores 0.
func (c *Classifier) CompoundScore(text string) float64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0.0
	}

	var sum float64
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:'\"()")
		if valence, ok := c.lexicon[word]; ok {
			sum += valence
		}
	}

	if sum == 0 {
		return 0.0
	}

	// Normalize into [-1, 1]
	return sum / math.Sqrt(sum*sum+normalizationAlpha)
}

// Classify maps text to a three-way label via its compound score.
func (c *Classifier) Classify(text string) Label {
	score := c.CompoundScore(text)

	switch {
	case score > positiveThreshold:
		return Positive
	case score < negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}
