package sqlinsert

import (
	"regexp"
	"strings"
)

// reInsert matches INSERT INTO <table>(<cols>) VALUES (<vals>). The value
// tuple is consumed quote-aware so a ')' inside a quoted value does not end it.
// Group 4 captures a trailing comma that marks a multi-row VALUES list.
var reInsert = regexp.MustCompile(`(?i)INSERT\s+INTO\s+([\w.$` + "`" + `]+)\s*\(([^)]*)\)\s*VALUES\s*\(` +
	`((?:'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"|[^'")])*)` +
	`\)(\s*,)?`)

// Statement is one INSERT statement located in a document.
type Statement struct {
	Table    string
	Columns  string // raw column list
	Values   string // raw value list of the first tuple
	Offset   int
	MultiRow bool
}

// Record splits the statement into fields. Multi-row statements and
// statements whose column and value counts differ yield no record.
func (s Statement) Record() (Record, bool) {
	if s.MultiRow {
		return nil, false
	}
	return Split(s.Columns, s.Values)
}

// FindStatements returns every INSERT statement in text in document order.
func FindStatements(text string) []Statement {
	idx := reInsert.FindAllStringSubmatchIndex(text, -1)
	out := make([]Statement, 0, len(idx))
	for _, m := range idx {
		out = append(out, Statement{
			Table:    strings.ReplaceAll(text[m[2]:m[3]], "`", ""),
			Columns:  text[m[4]:m[5]],
			Values:   text[m[6]:m[7]],
			Offset:   m[0],
			MultiRow: m[8] >= 0,
		})
	}
	return out
}
