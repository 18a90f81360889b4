package detectors

import (
	"strings"

	"github.com/redactyl/credsweep/internal/types"
)

// Classifier applies a rule table to field/value pairs.
type Classifier struct {
	rules []Rule
}

// New returns a classifier over rules. A nil table means DefaultRules.
func New(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify tests "field=value" against every rule. Matching is not exclusive:
// each rule that matches contributes its own finding. The keyword captured by
// FieldGroup must lie inside field; a keyword that only appears in value does
// not count.
func (c *Classifier) Classify(field, value string) []types.Finding {
	probe := field + "=" + value
	var out []types.Finding
	for _, r := range c.rules {
		m := r.Pattern.FindStringSubmatchIndex(probe)
		if m == nil || 2*r.ValueGroup+1 >= len(m) || 2*r.FieldGroup+1 >= len(m) {
			continue
		}
		if fe := m[2*r.FieldGroup+1]; fe < 0 || fe > len(field) {
			continue
		}
		vs, ve := m[2*r.ValueGroup], m[2*r.ValueGroup+1]
		if vs < 0 {
			continue
		}
		v := strings.TrimSpace(probe[vs:ve])
		if v == "" {
			continue
		}
		out = append(out, types.Finding{Tag: r.Tag, Field: field, Value: v})
	}
	return out
}
