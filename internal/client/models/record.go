package models

import (
	"fmt"
	"sort"
	"strings"
)

// Record is an opaque backend object (agreement, client, transaction). The
// client never interprets it beyond echoing fields back to the user.
type Record map[string]any

// ID returns the record's "id" field formatted as a string, or "" if absent.
func (r Record) ID() string {
	v, ok := r["id"]
	if !ok || v == nil {
		return ""
	}
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(v)
}

// Require checks that every named field is present and non-blank.
func (r Record) Require(fields ...string) error {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		v, ok := r[f]
		if !ok || v == nil {
			values[f] = ""
			continue
		}
		values[f] = fmt.Sprint(v)
	}
	return requireFields(values)
}

// String renders "id: k=v k=v" with keys in stable order.
func (r Record) String() string {
	keys := make([]string, 0, len(r))
	for k := range r {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	if id := r.ID(); id != "" {
		b.WriteString(id)
		b.WriteString(":")
	}
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s=%v", k, r[k])
	}
	return b.String()
}

// ParseFields turns "name=value" lines into a Record. Blank lines are
// skipped; a line without '=' is an error.
func ParseFields(lines []string) (Record, error) {
	rec := Record{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid field %q, expected name=value", line)
		}
		rec[k] = strings.TrimSpace(v)
	}
	return rec, nil
}


// Matches reports whether term occurs, case-insensitively, in any field
// value. An empty term matches everything.
func (r Record) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, v := range r {
		if v != nil && strings.Contains(strings.ToLower(fmt.Sprint(v)), term) {
			return true
		}
	}
	return false
}

// Filter returns the records matching term, in their original order.
func Filter(recs []Record, term string) []Record {
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if r.Matches(term) {
			out = append(out, r)
		}
	}
	return out
}
