package sentiment

import (
	"testing"
)

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name     string
		text     string
		expected Label
	}{
		{
			name:     "positive statement",
			text:     "I love Bitcoin",
			expected: Positive,
		},
		{
			name:     "negative statement",
			text:     "I hate you",
			expected: Negative,
		},
		{
			name:     "neutral word",
			text:     "Banana",
			expected: Neutral,
		},
		{
			name:     "empty text",
			text:     "",
			expected: Neutral,
		},
		{
			name:     "whitespace only",
			text:     "   \t  ",
			expected: Neutral,
		},
		{
			name:     "bullish crypto text",
			text:     "Bitcoin to the moon, massive rally incoming!",
			expected: Positive,
		},
		{
			name:     "bearish crypto text",
			text:     "bitcoin crashed hard, panic selling everywhere",
			expected: Negative,
		},
		{
			name:     "punctuation attached",
			text:     "What a scam!",
			expected: Negative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.text)
			if got != tt.expected {
				t.Errorf("Classify(%q) = %s, want %s (compound: %.3f)",
					tt.text, got, tt.expected, classifier.CompoundScore(tt.text))
			}
		})
	}
}

func TestClassifier_CompoundScoreRange(t *testing.T) {
	classifier := NewClassifier()

	texts := []string{
		"love love love love love love love",
		"hate hate hate crash crash dump dump",
		"the quick brown fox",
		"",
	}

	for _, text := range texts {
		score := classifier.CompoundScore(text)
		if score < -1.0 || score > 1.0 {
			t.Errorf("CompoundScore(%q) = %.4f, out of [-1, 1]", text, score)
		}
	}
}

func TestClassifier_EmptyTextScoresZero(t *testing.T) {
	classifier := NewClassifier()

	if score := classifier.CompoundScore(""); score != 0 {
		t.Errorf("expected zero compound for empty text, got %.4f", score)
	}
}
