// Package compose dresses raw answer strings in a conversational opener and
// closer so generated replies read like chat rather than database output.
package compose

import (
	"math/rand"
	"strings"
)

// Sentiment keys for opener selection.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

var openers = map[string][]string{
	SentimentPositive: {
		"Great news!",
		"Good news!",
		"Happy to help!",
		"Absolutely!",
	},
	SentimentNegative: {
		"I'm sorry about that.",
		"Unfortunately,",
		"I understand this can be frustrating.",
	},
	SentimentNeutral: {
		"Sure,",
		"Of course,",
		"Here's what I found:",
		"Alright,",
	},
}

var closers = []string{
	"Is there anything else I can help you with?",
	"Let me know if you need anything else.",
	"Feel free to ask if you have more questions.",
}

// htmlEntities covers the few entities the upstream document pipeline leaks
// into answers.
var htmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&#39;", "'",
	"&quot;", `"`,
	"&lt;", "<",
	"&gt;", ">",
)

// Wrap cleans the answer and frames it with a random opener for the given
// sentiment and a random closer. Text that already starts with a known
// opener is returned cleaned but otherwise untouched, so wrapping is
// idempotent. Unknown sentiments fall back to neutral.
func Wrap(answer, sentiment string) string {
	text := strings.TrimSpace(htmlEntities.Replace(answer))
	if text == "" {
		return text
	}

	if startsWithOpener(text) {
		return text
	}

	pool, ok := openers[sentiment]
	if !ok {
		pool = openers[SentimentNeutral]
	}
	opener := pool[rand.Intn(len(pool))]
	closer := closers[rand.Intn(len(closers))]

	return opener + " " + text + "\n\n" + closer
}

// startsWithOpener checks the cleaned text against every known opener,
// case-insensitively.
func startsWithOpener(text string) bool {
	lower := strings.ToLower(text)
	for _, pool := range openers {
		for _, opener := range pool {
			if strings.HasPrefix(lower, strings.ToLower(opener)) {
				return true
			}
		}
	}
	return false
}

// BridgeTopic returns a connective phrase when the conversation stays on the
// same topic, otherwise an empty string.
func BridgeTopic(previousTopic, newTopic string) string {
	if previousTopic == "" || newTopic == "" {
		return ""
	}
	if previousTopic != newTopic {
		return ""
	}
	return "Since we're still on the same topic, "
}
