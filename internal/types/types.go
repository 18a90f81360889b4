package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Tag is the classification assigned to a credential-like value.
type Tag string

const (
	TagEmail      Tag = "email"
	TagPassword   Tag = "password"
	TagPhone      Tag = "phone"
	TagName       Tag = "name"
	TagCreditCard Tag = "credit_card"
	TagSSN        Tag = "ssn"
	TagAPIKey     Tag = "api_key"
)

// Tags returns every classification tag in presentation order.
func Tags() []Tag {
	return []Tag{TagEmail, TagPassword, TagPhone, TagName, TagCreditCard, TagSSN, TagAPIKey}
}

// ReportKey is the JSON key a tag is stored under in a report file.
func (t Tag) ReportKey() string {
	switch t {
	case TagEmail:
		return "emails"
	case TagPassword:
		return "passwords"
	case TagPhone:
		return "phones"
	case TagName:
		return "names"
	case TagCreditCard:
		return "credit_cards"
	case TagSSN:
		return "ssns"
	case TagAPIKey:
		return "api_keys"
	}
	return string(t)
}

// Finding is a single value extracted from a field and believed to be a
// credential of the given tag.
type Finding struct {
	Tag   Tag    `json:"tag"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// FindingSet maps each tag to the unique values found for it.
type FindingSet map[Tag]map[string]struct{}

// NewFindingSet returns a set with an empty entry for every tag.
func NewFindingSet() FindingSet {
	s := make(FindingSet, len(Tags()))
	for _, t := range Tags() {
		s[t] = map[string]struct{}{}
	}
	return s
}

// Add records value under tag. Duplicates are ignored.
func (s FindingSet) Add(tag Tag, value string) {
	vals, ok := s[tag]
	if !ok {
		vals = map[string]struct{}{}
		s[tag] = vals
	}
	vals[value] = struct{}{}
}

// AddFindings records every finding in fs.
func (s FindingSet) AddFindings(fs []Finding) {
	for _, f := range fs {
		s.Add(f.Tag, f.Value)
	}
}

// Merge unions other into s.
func (s FindingSet) Merge(other FindingSet) {
	for tag, vals := range other {
		for v := range vals {
			s.Add(tag, v)
		}
	}
}

// Values returns the values for tag sorted lexicographically.
func (s FindingSet) Values(tag Tag) []string {
	out := make([]string, 0, len(s[tag]))
	for v := range s[tag] {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s FindingSet) Count(tag Tag) int { return len(s[tag]) }

// Total is the number of values across all tags.
func (s FindingSet) Total() int {
	n := 0
	for _, vals := range s {
		n += len(vals)
	}
	return n
}

// Equal reports whether both sets hold the same values per tag.
func (s FindingSet) Equal(other FindingSet) bool {
	for _, t := range Tags() {
		if len(s[t]) != len(other[t]) {
			return false
		}
		for v := range s[t] {
			if _, ok := other[t][v]; !ok {
				return false
			}
		}
	}
	return true
}

// reportFile is the on-disk shape. Field order fixes the key order.
type reportFile struct {
	Emails      []string `json:"emails"`
	Passwords   []string `json:"passwords"`
	Phones      []string `json:"phones"`
	Names       []string `json:"names"`
	CreditCards []string `json:"credit_cards"`
	SSNs        []string `json:"ssns"`
	APIKeys     []string `json:"api_keys"`
}

func (s FindingSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(reportFile{
		Emails:      s.Values(TagEmail),
		Passwords:   s.Values(TagPassword),
		Phones:      s.Values(TagPhone),
		Names:       s.Values(TagName),
		CreditCards: s.Values(TagCreditCard),
		SSNs:        s.Values(TagSSN),
		APIKeys:     s.Values(TagAPIKey),
	})
}

func (s *FindingSet) UnmarshalJSON(b []byte) error {
	var rf reportFile
	if err := json.Unmarshal(b, &rf); err != nil {
		return err
	}
	out := NewFindingSet()
	for tag, vals := range map[Tag][]string{
		TagEmail:      rf.Emails,
		TagPassword:   rf.Passwords,
		TagPhone:      rf.Phones,
		TagName:       rf.Names,
		TagCreditCard: rf.CreditCards,
		TagSSN:        rf.SSNs,
		TagAPIKey:     rf.APIKeys,
	} {
		for _, v := range vals {
			out.Add(tag, v)
		}
	}
	*s = out
	return nil
}

// IOError is a local filesystem failure while reading or writing scan
// artifacts (downloaded documents, reports, history).
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
