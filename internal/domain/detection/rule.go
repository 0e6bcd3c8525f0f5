package detection

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidRule is returned when a registry is built from a malformed rule
var ErrInvalidRule = errors.New("invalid rule")

// CheckFunc is a pure predicate over a raw URL and its parsed form.
// It must not have side effects and must not panic for a parsed URL.
type CheckFunc func(raw string, parsed *url.URL) bool

// Rule is a single named, weighted phishing heuristic
type Rule struct {
	ID          string    // stable key, unique within a registry
	Name        string    // human-readable label
	Weight      int       // contribution to the phish score when triggered
	Check       CheckFunc // trigger predicate
	Description string    // rationale shown to the user
}

// Registry holds an ordered, immutable set of rules
//
// Insertion order is the canonical evaluation and display order. There are no
// mutation methods: adding or reweighting a rule means building a new registry,
// so a Registry can be shared between goroutines without locking.
type Registry struct {
	rules []Rule
	index map[string]int
}

// NewRegistry creates a registry from rules, preserving their order
func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{
		rules: make([]Rule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
	}

	for _, rule := range rules {
		id := strings.TrimSpace(rule.ID)
		switch {
		case id == "":
			return nil, fmt.Errorf("%w: empty id (name %q)", ErrInvalidRule, rule.Name)
		case rule.Weight <= 0:
			return nil, fmt.Errorf("%w: %s has non-positive weight %d", ErrInvalidRule, id, rule.Weight)
		case rule.Check == nil:
			return nil, fmt.Errorf("%w: %s has no check", ErrInvalidRule, id)
		}
		if _, dup := r.index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidRule, id)
		}

		rule.ID = id
		r.index[id] = len(r.rules)
		r.rules = append(r.rules, rule)
	}

	return r, nil
}

// Rules returns a copy of the rules in registry order
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Len returns the number of rules
func (r *Registry) Len() int {
	return len(r.rules)
}

// Lookup returns a rule by ID
func (r *Registry) Lookup(id string) (Rule, bool) {
	idx, ok := r.index[strings.TrimSpace(id)]
	if !ok {
		return Rule{}, false
	}
	return r.rules[idx], true
}

// MaxScore is the score of a URL that triggers every rule
func (r *Registry) MaxScore() int {
	total := 0
	for _, rule := range r.rules {
		total += rule.Weight
	}
	return total
}
