package sqlinsert

import "strings"

// Field is one column/value pair taken from an INSERT statement. Null marks
// an unquoted SQL NULL, whose Value is empty.
type Field struct {
	Name  string
	Value string
	Null  bool
}

// Record is the ordered set of fields produced from a single statement.
type Record []Field

// Map returns the record keyed by column name. Later duplicates win.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r))
	for _, f := range r {
		m[f.Name] = f.Value
	}
	return m
}

// SplitColumns splits a raw column list on commas and strips backticks,
// quotes and whitespace from each name.
func SplitColumns(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.Trim(p, " \t\r\n`'\""))
	}
	return out
}

// SplitValues splits a raw value list on commas that are outside single or
// double quoted runs. Inside a quoted run a backslash escapes the next byte.
// Each value has surrounding whitespace and one layer of matching quotes
// removed.
func SplitValues(raw string) []string {
	toks := splitRaw(raw)
	for i, t := range toks {
		toks[i] = cleanValue(t)
	}
	return toks
}

// splitRaw splits on top-level commas and leaves tokens untrimmed.
func splitRaw(raw string) []string {
	var (
		out     []string
		cur     strings.Builder
		quote   byte
		escaped bool
	)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case quote != 0 && c == '\\':
			escaped = true
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && (c == '\'' || c == '"'):
			quote = c
		case quote == 0 && c == ',':
			out = append(out, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	return append(out, cur.String())
}

func isNull(tok string) bool {
	return strings.EqualFold(strings.TrimSpace(tok), "NULL")
}

func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && (v[0] == '\'' || v[0] == '"') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// Split pairs the columns and values of one statement positionally. It
// reports false, and returns no record, when the counts differ.
func Split(rawCols, rawVals string) (Record, bool) {
	cols := SplitColumns(rawCols)
	vals := splitRaw(rawVals)
	if len(cols) != len(vals) {
		return nil, false
	}
	rec := make(Record, len(cols))
	for i := range cols {
		if isNull(vals[i]) {
			rec[i] = Field{Name: cols[i], Null: true}
			continue
		}
		rec[i] = Field{Name: cols[i], Value: cleanValue(vals[i])}
	}
	return rec, true
}
