// Package intent classifies free-text HR questions into a primary intent,
// an optional sub-intent, and a heuristic confidence score. Scoring is
// additive over a declarative keyword table; multi-turn behavior (pending
// confirmations, recency boosting) comes from the conversation store.
package intent

import (
	"strings"

	"github.com/suklaray/hrms-sub002/pkg/assistant/conversation"
)

// Intent tags outside the scoring table.
const (
	TagGeneral       = "general"
	TagNonHR         = "non_hr"
	TagClarification = "clarification"
)

// Weights and bonuses of the additive scoring pass. Raw scores can exceed
// 1.0 before the clamp; they are never renormalized.
const (
	keywordFactor    = 0.6
	prefixFactor     = 0.3
	subIntentFactor  = 0.4
	exactMatchBonus  = 0.3
	nonHRConfidence  = 0.95
	confirmPositive  = 0.95
	confirmNegative  = 0.9
	hrRelatedMinimum = 0.3
)

// Result is the outcome of one classification. Ephemeral, not persisted.
type Result struct {
	PrimaryIntent        string   `json:"primary_intent"`
	SubIntent            string   `json:"sub_intent,omitempty"`
	Confidence           float64  `json:"confidence"`
	IsNonHR              bool     `json:"is_non_hr,omitempty"`
	IsConfirmation       bool     `json:"is_confirmation,omitempty"`
	ConfirmationResponse bool     `json:"confirmation_response,omitempty"`
	Labels               []string `json:"labels"`
}

// Detector scores questions against an ordered intent table.
type Detector struct {
	table      []Definition
	nonHRTerms []string
	contexts   *conversation.Store
}

// NewDetector builds a detector over the given table. The table order is the
// tie-break: equal scores keep the earlier row.
func NewDetector(table []Definition, contexts *conversation.Store) *Detector {
	return &Detector{
		table:      table,
		nonHRTerms: NonHRTerms(),
		contexts:   contexts,
	}
}

// Detect classifies a question. Every input resolves to some Result; there is
// no invalid-input path. The userID may be empty, which disables the
// contextual passes.
func (d *Detector) Detect(question, userID string) Result {
	q := strings.ToLower(strings.TrimSpace(question))

	// Off-topic questions short-circuit everything else, including any HR
	// keywords also present ("weather for my leave trip" is still non_hr).
	for _, term := range d.nonHRTerms {
		if strings.Contains(q, term) {
			return withLabels(Result{
				PrimaryIntent: TagNonHR,
				Confidence:    nonHRConfidence,
				IsNonHR:       true,
			})
		}
	}

	// Pending yes/no confirmation takes priority over scoring.
	if result, ok := d.resolveConfirmation(q, userID); ok {
		return result
	}

	result := d.score(q, userID)

	// Remember HR-shaped detections so the next question gets a recency
	// boost toward the same topic.
	if userID != "" && result.PrimaryIntent != TagGeneral {
		d.contexts.Set(userID, conversation.Update{
			LastIntent: &conversation.IntentRef{
				Primary: result.PrimaryIntent,
				Sub:     result.SubIntent,
			},
		})
	}

	return result
}

// IsHRRelated reports whether a result is confident enough to answer as an
// HR question rather than falling back to a generic response.
func IsHRRelated(r Result) bool {
	return r.PrimaryIntent != TagNonHR &&
		r.PrimaryIntent != TagGeneral &&
		r.Confidence > hrRelatedMinimum
}

func (d *Detector) resolveConfirmation(q, userID string) (Result, bool) {
	if userID == "" {
		return Result{}, false
	}
	ctx := d.contexts.Get(userID)
	if ctx == nil || !ctx.PendingConfirmation {
		return Result{}, false
	}

	isYes := q == "yes" || strings.Contains(q, "yes")
	isNo := q == "no" || strings.Contains(q, "no")
	if !isYes && !isNo {
		return Result{}, false
	}

	res := d.contexts.ResolveConfirmation(userID, isYes)
	if res == nil {
		return Result{}, false
	}

	if res.UseSuggested && res.LastIntent != nil {
		return withLabels(Result{
			PrimaryIntent:        res.LastIntent.Primary,
			SubIntent:            res.LastIntent.Sub,
			Confidence:           confirmPositive,
			IsConfirmation:       true,
			ConfirmationResponse: true,
		}), true
	}

	return withLabels(Result{
		PrimaryIntent:  TagClarification,
		Confidence:     confirmNegative,
		IsConfirmation: true,
	}), true
}

func (d *Detector) score(q, userID string) Result {
	boosts := map[string]float64{}
	if userID != "" {
		boosts = d.contexts.ContextualBoost(userID)
	}

	firstToken := ""
	if fields := strings.Fields(q); len(fields) > 0 {
		firstToken = fields[0]
	}

	best := Result{PrimaryIntent: TagGeneral}
	bestScore := 0.0

	for _, def := range d.table {
		score := 0.0
		subIntent := ""

		for _, kw := range def.Keywords {
			if strings.Contains(q, kw) {
				score += def.Weight * keywordFactor
			}
			// Both conditions can hold for the same keyword; the bonus
			// still fires once per keyword.
			if strings.HasPrefix(q, kw) || (firstToken != "" && strings.Contains(kw, firstToken)) {
				score += def.Weight * prefixFactor
			}
		}

		for _, sub := range def.SubIntents {
			for _, kw := range sub.Keywords {
				if strings.Contains(q, kw) || strings.HasPrefix(q, kw) {
					score += def.Weight * subIntentFactor
					subIntent = sub.Tag // last match wins
				}
			}
		}

		score += boosts[def.Tag]

		if q == def.Tag || strings.Contains(q, "my "+def.Tag) || strings.Contains(q, def.Tag+" status") {
			score += exactMatchBonus
		}

		// Strict > keeps the earliest row on ties.
		if score > bestScore {
			bestScore = score
			best = Result{PrimaryIntent: def.Tag, SubIntent: subIntent}
		}
	}

	if bestScore > 1.0 {
		bestScore = 1.0
	}
	best.Confidence = bestScore

	return withLabels(best)
}

func withLabels(r Result) Result {
	labels := []string{r.PrimaryIntent}
	if r.SubIntent != "" {
		labels = append(labels, r.SubIntent)
	}
	r.Labels = labels
	return r
}
