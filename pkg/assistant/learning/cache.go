// Package learning keeps a best-effort log of past question/response pairs.
// It is non-authoritative: it feeds insight reporting and similarity lookups,
// never the answers themselves. State lives in memory and is flushed to a
// pluggable store periodically; losing it is acceptable.
package learning

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/suklaray/hrms-sub002/internal/pkg/logger"
	"github.com/suklaray/hrms-sub002/pkg/assistant/textutil"
)

const (
	// DefaultFlushEvery flushes the cache to the store on every Nth
	// recorded question.
	DefaultFlushEvery = 10

	// DefaultSimilarityThreshold is the minimum normalized similarity for
	// FindSimilar hits.
	DefaultSimilarityThreshold = 0.7

	maxSimilarResults  = 3
	topIntentsLimit    = 5
	recentQuestionsMax = 10
)

// Record is one learned question/response tuple. At most one record exists
// per (question, userID) pair; repeats bump Frequency instead.
type Record struct {
	Question   string    `json:"question"`
	Intent     string    `json:"intent"`
	SubIntent  string    `json:"sub_intent,omitempty"`
	Confidence float64   `json:"confidence"`
	Response   string    `json:"response"`
	Timestamp  time.Time `json:"timestamp"`
	UserID     string    `json:"user_id"`
	Frequency  int       `json:"frequency"`
	Entities   []string  `json:"entities,omitempty"`
}

// IntentCount pairs an intent tag with its occurrence count.
type IntentCount struct {
	Intent string `json:"intent"`
	Count  int    `json:"count"`
}

// RecentQuestion is a trimmed view of a record for the insights report.
type RecentQuestion struct {
	Question  string    `json:"question"`
	Intent    string    `json:"intent"`
	Timestamp time.Time `json:"timestamp"`
}

// Insights is the on-demand aggregation over all records.
type Insights struct {
	TotalQuestions    int                `json:"total_questions"`
	IntentCounts      map[string]int     `json:"intent_counts"`
	AverageConfidence map[string]float64 `json:"average_confidence"`
	TopIntents        []IntentCount      `json:"top_intents"`
	RecentQuestions   []RecentQuestion   `json:"recent_questions"`
}

// State is the persisted shape: the full record list plus the running
// aggregates, rewritten wholesale on each flush.
type State struct {
	Questions      []*Record            `json:"questions"`
	TotalQuestions int                  `json:"total_questions"`
	IntentCounts   map[string]int       `json:"intent_counts"`
	Confidences    map[string][]float64 `json:"confidences"`
}

// Store persists and restores the cache state. Both directions are best
// effort from the cache's point of view.
type Store interface {
	Load() (*State, error)
	Save(state *State) error
}

// Cache is the in-memory learning log. Safe for concurrent use.
type Cache struct {
	mu sync.Mutex

	records        []*Record
	totalQuestions int
	intentCounts   map[string]int
	confidences    map[string][]float64

	store      Store
	flushEvery int
	logger     logger.ILogger
}

// NewCache builds a cache backed by the given store and attempts to restore
// previously persisted state. A missing or corrupt snapshot starts empty.
// flushEvery <= 0 disables periodic flushing.
func NewCache(store Store, flushEvery int, log logger.ILogger) *Cache {
	c := &Cache{
		intentCounts: map[string]int{},
		confidences:  map[string][]float64{},
		store:        store,
		flushEvery:   flushEvery,
		logger:       log,
	}

	if store == nil {
		return c
	}

	state, err := store.Load()
	if err != nil {
		log.Warn("learning", "Failed to load learning cache, starting empty", map[string]interface{}{
			"error": err.Error(),
		})
		return c
	}
	if state != nil {
		c.records = state.Questions
		c.totalQuestions = state.TotalQuestions
		if state.IntentCounts != nil {
			c.intentCounts = state.IntentCounts
		}
		if state.Confidences != nil {
			c.confidences = state.Confidences
		}
	}

	return c
}

// Record logs a question/response pair. An exact re-ask by the same user
// increments the existing record's frequency and refreshes its timestamp and
// response instead of appending a duplicate. Never fails; persistence errors
// are logged and swallowed.
func (c *Cache) Record(question, response, userID, intentTag, subIntent string, confidence float64, entities []string) {
	normalized := strings.ToLower(strings.TrimSpace(question))

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range c.records {
		if r.Question == normalized && r.UserID == userID {
			r.Frequency++
			r.Timestamp = time.Now()
			r.Response = response
			c.bumpCounters(intentTag, confidence)
			c.maybeFlush()
			return
		}
	}

	c.records = append(c.records, &Record{
		Question:   normalized,
		Intent:     intentTag,
		SubIntent:  subIntent,
		Confidence: confidence,
		Response:   response,
		Timestamp:  time.Now(),
		UserID:     userID,
		Frequency:  1,
		Entities:   entities,
	})
	c.bumpCounters(intentTag, confidence)
	c.maybeFlush()
}

func (c *Cache) bumpCounters(intentTag string, confidence float64) {
	c.totalQuestions++
	c.intentCounts[intentTag]++
	c.confidences[intentTag] = append(c.confidences[intentTag], confidence)
}

// maybeFlush persists on every Nth recorded question. Caller holds the lock.
func (c *Cache) maybeFlush() {
	if c.store == nil || c.flushEvery <= 0 {
		return
	}
	if c.totalQuestions%c.flushEvery != 0 {
		return
	}
	c.save()
}

// Flush persists the full state immediately, best effort.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.save()
}

// save writes the state through the store. Caller holds the lock.
func (c *Cache) save() {
	if c.store == nil {
		return
	}
	state := &State{
		Questions:      c.records,
		TotalQuestions: c.totalQuestions,
		IntentCounts:   c.intentCounts,
		Confidences:    c.confidences,
	}
	if err := c.store.Save(state); err != nil {
		c.logger.Warn("learning", "Failed to persist learning cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// GetInsights aggregates the cache into the admin report.
func (c *Cache) GetInsights() Insights {
	c.mu.Lock()
	defer c.mu.Unlock()

	in := Insights{
		TotalQuestions:    c.totalQuestions,
		IntentCounts:      make(map[string]int, len(c.intentCounts)),
		AverageConfidence: make(map[string]float64, len(c.confidences)),
	}

	for tag, count := range c.intentCounts {
		in.IntentCounts[tag] = count
	}
	for tag, samples := range c.confidences {
		if len(samples) == 0 {
			continue
		}
		sum := 0.0
		for _, s := range samples {
			sum += s
		}
		in.AverageConfidence[tag] = sum / float64(len(samples))
	}

	for tag, count := range c.intentCounts {
		in.TopIntents = append(in.TopIntents, IntentCount{Intent: tag, Count: count})
	}
	sort.Slice(in.TopIntents, func(i, j int) bool {
		if in.TopIntents[i].Count != in.TopIntents[j].Count {
			return in.TopIntents[i].Count > in.TopIntents[j].Count
		}
		return in.TopIntents[i].Intent < in.TopIntents[j].Intent
	})
	if len(in.TopIntents) > topIntentsLimit {
		in.TopIntents = in.TopIntents[:topIntentsLimit]
	}

	recent := make([]*Record, len(c.records))
	copy(recent, c.records)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})
	if len(recent) > recentQuestionsMax {
		recent = recent[:recentQuestionsMax]
	}
	for _, r := range recent {
		in.RecentQuestions = append(in.RecentQuestions, RecentQuestion{
			Question:  r.Question,
			Intent:    r.Intent,
			Timestamp: r.Timestamp,
		})
	}

	return in
}

// FindSimilar returns up to three records whose questions resemble the input
// at or above the threshold, most similar first.
func (c *Cache) FindSimilar(question string, threshold float64) []*Record {
	normalized := strings.ToLower(strings.TrimSpace(question))

	c.mu.Lock()
	defer c.mu.Unlock()

	type scored struct {
		record *Record
		sim    float64
	}
	var matches []scored
	for _, r := range c.records {
		sim := textutil.Similarity(normalized, r.Question)
		if sim >= threshold {
			matches = append(matches, scored{record: r, sim: sim})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].sim > matches[j].sim
	})
	if len(matches) > maxSimilarResults {
		matches = matches[:maxSimilarResults]
	}

	out := make([]*Record, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.record)
	}
	return out
}
