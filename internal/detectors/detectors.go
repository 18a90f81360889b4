package detectors

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/redactyl/credsweep/internal/types"
)

// Rule recognizes one credential type in a "field=value" probe. FieldGroup
// and ValueGroup are capture group indexes into Pattern.
type Rule struct {
	Tag        types.Tag
	Pattern    *regexp.Regexp
	FieldGroup int
	ValueGroup int
}

// Field-name tokens must end the field name, so prefixed columns like
// user_email still qualify. Values are anchored at the end of the probe.
var (
	reEmail      = regexp.MustCompile(`(?i)(e-mail|email|mail)\s*=\s*['"]?([a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,})['"]?\s*$`)
	rePassword   = regexp.MustCompile(`(?i)(password|pass|pwd)\s*=\s*['"]?([^'"]+)['"]?\s*$`)
	rePhone      = regexp.MustCompile(`(?i)(phone|mobile|contact)\s*=\s*['"]?([0-9+\-() ]{7,})['"]?\s*$`)
	reName       = regexp.MustCompile(`(?i)(fullname|username|name)\s*=\s*['"]?([a-z .]+)['"]?\s*$`)
	reCreditCard = regexp.MustCompile(`(?i)(credit|card|cc)\s*=\s*['"]?([0-9 \-]{13,19})['"]?\s*$`)
	reSSN        = regexp.MustCompile(`(?i)(ssn|social[ _\-]?security)\s*=\s*['"]?([0-9\-]{9,})['"]?\s*$`)
	reAPIKey     = regexp.MustCompile(`(?i)(api[_\-]?key|secret[_\-]?key)\s*=\s*['"]?([^'"]+)['"]?\s*$`)
)

// DefaultRules returns the built-in rule table in presentation order.
func DefaultRules() []Rule {
	return []Rule{
		{Tag: types.TagEmail, Pattern: reEmail, FieldGroup: 1, ValueGroup: 2},
		{Tag: types.TagPassword, Pattern: rePassword, FieldGroup: 1, ValueGroup: 2},
		{Tag: types.TagPhone, Pattern: rePhone, FieldGroup: 1, ValueGroup: 2},
		{Tag: types.TagName, Pattern: reName, FieldGroup: 1, ValueGroup: 2},
		{Tag: types.TagCreditCard, Pattern: reCreditCard, FieldGroup: 1, ValueGroup: 2},
		{Tag: types.TagSSN, Pattern: reSSN, FieldGroup: 1, ValueGroup: 2},
		{Tag: types.TagAPIKey, Pattern: reAPIKey, FieldGroup: 1, ValueGroup: 2},
	}
}

// IDs returns the tag names that can be passed to Filter.
func IDs() []string {
	out := make([]string, 0, len(types.Tags()))
	for _, t := range types.Tags() {
		out = append(out, string(t))
	}
	return out
}

// Filter narrows rules by comma-separated enable/disable tag lists. An empty
// enable list keeps every rule; disable is applied last.
func Filter(rules []Rule, enable, disable string) []Rule {
	if enable == "" && disable == "" {
		return rules
	}
	allowed := splitIDs(enable)
	blocked := splitIDs(disable)
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if len(allowed) > 0 && !allowed[string(r.Tag)] {
			continue
		}
		if blocked[string(r.Tag)] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CheckIDs rejects a comma-separated list containing an unknown tag ID.
func CheckIDs(list string) error {
	known := map[string]bool{}
	for _, id := range IDs() {
		known[id] = true
	}
	for id := range splitIDs(list) {
		if !known[id] {
			return fmt.Errorf("unknown detector %q (known: %s)", id, strings.Join(IDs(), ", "))
		}
	}
	return nil
}

func splitIDs(s string) map[string]bool {
	m := map[string]bool{}
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			m[id] = true
		}
	}
	return m
}
