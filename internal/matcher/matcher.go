// Package matcher resolves free-text transaction descriptions to category ids
// using workspace-scoped keyword rules. A Matcher is an immutable value built
// once from the stored rules and injected where needed; it holds no ambient
// state and is safe for concurrent use.
package matcher

import (
	"strings"

	"github.com/fintrack/fintrack/internal/domain"
)

// Rule maps a keyword to a category for one flow type.
type Rule struct {
	Keyword    string
	CategoryID string
	Flow       domain.FlowType
}

// Matcher matches description text against keyword rules.
type Matcher struct {
	rules []Rule
}

// New builds a matcher from the given rules. Rules with empty keywords are
// dropped.
func New(rules []Rule) *Matcher {
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		keyword := strings.ToLower(strings.TrimSpace(r.Keyword))
		if keyword == "" {
			continue
		}
		kept = append(kept, Rule{Keyword: keyword, CategoryID: r.CategoryID, Flow: r.Flow})
	}

	return &Matcher{rules: kept}
}

// Match returns the category id for the first rule whose keyword occurs in
// text (case-insensitive) and whose flow type matches. When several rules
// match, the longest keyword wins; ties fall to rule order.
func (m *Matcher) Match(text string, flow domain.FlowType) (string, bool) {
	text = strings.ToLower(text)

	var (
		bestID  string
		bestLen int
	)

	for _, r := range m.rules {
		if r.Flow != flow {
			continue
		}
		if len(r.Keyword) > bestLen && strings.Contains(text, r.Keyword) {
			bestID = r.CategoryID
			bestLen = len(r.Keyword)
		}
	}

	return bestID, bestLen > 0
}

// Len returns the number of usable rules.
func (m *Matcher) Len() int {
	return len(m.rules)
}
