package search

import (
	"strings"
	"sync"
)

const maxSearchHistory = 100

// ResultInteraction records that a caller engaged with a result of the
// given MIME kind, as a signal to fold into future ranking. It never
// touches the store — preferences live only for the process lifetime of
// the Personalizer that observed them.
type ResultInteraction struct {
	MimeKind         string
	InteractionScore float64
}

// Personalizer re-weights search results in-process using an exponential
// moving average of per-MIME-kind preference plus recent query-history
// overlap. It requires no user accounts: a caller may construct one per
// session, per user, or not at all — Search works identically without it.
type Personalizer struct {
	mu          sync.Mutex
	preferences map[string]float64
	history     []string
}

// NewPersonalizer returns an empty Personalizer. It is not attached to a
// Query; callers apply it to results themselves.
func NewPersonalizer() *Personalizer {
	return &Personalizer{preferences: make(map[string]float64)}
}

// RecordInteraction folds an observed interaction into the running
// preference for that MIME kind: pref = pref*0.9 + score*0.1.
func (p *Personalizer) RecordInteraction(i ResultInteraction) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.preferences[i.MimeKind]
	p.preferences[i.MimeKind] = current*0.9 + i.InteractionScore*0.1
}

// RecordQuery appends query to the recent-search history, capped at the
// most recent maxSearchHistory entries.
func (p *Personalizer) RecordQuery(query string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.history = append(p.history, query)
	if len(p.history) > maxSearchHistory {
		p.history = p.history[len(p.history)-maxSearchHistory:]
	}
}

// Personalize adds a small boost to each result's score based on its MIME
// kind preference and title-word overlap with recent queries, then
// re-sorts best-first. Results are otherwise untouched.
func (p *Personalizer) Personalize(results []Result) []Result {
	p.mu.Lock()
	prefs := make(map[string]float64, len(p.preferences))
	for k, v := range p.preferences {
		prefs[k] = v
	}
	history := append([]string(nil), p.history...)
	p.mu.Unlock()

	out := make([]Result, len(results))
	copy(out, results)

	for i := range out {
		out[i].Score += personalizationBoost(out[i], prefs, history)
	}

	stableSortByScore(out)
	return out
}

func personalizationBoost(r Result, prefs map[string]float64, history []string) float64 {
	var boost float64
	if pref, ok := prefs[r.MimeKind]; ok {
		boost += pref * 0.3
	}

	for _, word := range strings.Fields(r.Title) {
		for _, query := range history {
			if strings.Contains(query, word) {
				boost += 0.1
				break
			}
		}
	}
	return boost
}

func stableSortByScore(results []Result) {
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && results[j].Score > results[j-1].Score; j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
}
