// Package knowledge scores and ranks the on-disk HR document corpus against
// a query derived from the detected intent plus the raw question. The corpus
// is a flat directory of .txt, .pdf and .xlsx files with optional .json
// sidecar metadata; every search re-scans the directory, nothing is cached.
package knowledge

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/suklaray/hrms-sub002/internal/pkg/logger"
)

// Scores below are integer weights summed per file.
const (
	filenameWordScore = 4
	contentWordScore  = 2
	fullPhraseScore   = 10

	// Two close-scoring candidates are treated as ambiguous: better to ask
	// the user than to guess wrong.
	ambiguityGap = 5
)

// ScoredDocument is one ranked corpus file. Produced fresh on every search.
type ScoredDocument struct {
	Filename string `json:"filename"`
	Content  string `json:"-"`
	Score    int    `json:"score"`
}

// Outcome is the result of a relevance lookup: either a single document, an
// ambiguity between two close candidates, or nothing (nil Outcome).
type Outcome struct {
	Document      *ScoredDocument `json:"document,omitempty"`
	Ambiguous     bool            `json:"ambiguous"`
	Options       []string        `json:"options,omitempty"`
	Clarification string          `json:"clarification,omitempty"`
}

// domainBonus is a fixed filename boost applied when the query mentions the
// trigger word.
type domainBonus struct {
	trigger  string
	filePart string
	score    int
}

var domainBonuses = []domainBonus{
	{trigger: "company", filePart: "company_policy", score: 12},
	{trigger: "holiday", filePart: "holiday_list", score: 12},
	{trigger: "employee", filePart: "employee_policy", score: 8},
}

// topicKeywords maps an intent tag to the static vocabulary appended to the
// question when building the combined search query.
var topicKeywords = map[string][]string{
	"leave":       {"leave", "vacation", "absence", "entitlement", "annual"},
	"policy":      {"policy", "rules", "guidelines", "handbook", "conduct"},
	"payroll":     {"payroll", "salary", "payslip", "compensation", "tax"},
	"attendance":  {"attendance", "timesheet", "shift", "working", "hours"},
	"benefits":    {"benefits", "insurance", "medical", "reimbursement", "perks"},
	"technical":   {"technical", "it", "laptop", "access", "software"},
	"grievance":   {"grievance", "complaint", "harassment", "escalation", "dispute"},
	"performance": {"performance", "appraisal", "review", "goals", "rating"},
}

// Base is the searchable document corpus rooted at a directory.
type Base struct {
	dir    string
	logger logger.ILogger
}

// NewBase creates a knowledge base over the given corpus directory.
func NewBase(dir string, logger logger.ILogger) *Base {
	return &Base{
		dir:    dir,
		logger: logger,
	}
}

// Search scores every corpus file against the query and returns the non-zero
// scorers, descending by score. A missing or unreadable corpus directory
// yields an empty result, never an error.
func (b *Base) Search(query string) []ScoredDocument {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		b.logger.Warn("knowledge", "Failed to read corpus directory", map[string]interface{}{
			"dir":   b.dir,
			"error": err.Error(),
		})
		return nil
	}

	query = strings.ToLower(strings.TrimSpace(query))
	words := strings.Fields(query)

	var results []ScoredDocument
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.EqualFold(filepath.Ext(name), ".json") {
			continue // sidecar metadata
		}

		content := b.extractText(filepath.Join(b.dir, name))
		score := scoreFile(name, content, query, words)
		if score == 0 {
			continue
		}
		results = append(results, ScoredDocument{
			Filename: name,
			Content:  content,
			Score:    score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func scoreFile(filename, content, query string, words []string) int {
	lowerName := strings.ToLower(filename)
	lowerContent := strings.ToLower(content)

	score := 0
	for _, w := range words {
		if strings.Contains(lowerName, w) {
			score += filenameWordScore
		}
		if strings.Contains(lowerContent, w) {
			score += contentWordScore
		}
	}

	// The full phrase in a filename outweighs scattered word hits.
	if query != "" && strings.Contains(lowerName, query) {
		score += fullPhraseScore
	}

	for _, bonus := range domainBonuses {
		if strings.Contains(query, bonus.trigger) && strings.Contains(lowerName, bonus.filePart) {
			score += bonus.score
		}
	}

	return score
}

// RelevantFile resolves the best document for an intent/question pair. The
// query is the question extended with the intent's topic vocabulary. When the
// top two candidates score within the ambiguity gap, the caller gets both
// names and a clarification prompt instead of a guess. Nil when nothing
// scores at all.
func (b *Base) RelevantFile(intentTag, question string) *Outcome {
	query := question
	if kws, ok := topicKeywords[intentTag]; ok {
		query = question + " " + strings.Join(kws, " ")
	}

	results := b.Search(query)
	if len(results) == 0 {
		return nil
	}

	if len(results) > 1 && results[0].Score-results[1].Score < ambiguityGap {
		first := baseName(results[0].Filename)
		second := baseName(results[1].Filename)
		return &Outcome{
			Ambiguous: true,
			Options:   []string{first, second},
			Clarification: "I found a couple of documents that could answer that: \"" +
				first + "\" and \"" + second + "\". Which one do you mean?",
		}
	}

	top := results[0]
	return &Outcome{Document: &top}
}

func baseName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
