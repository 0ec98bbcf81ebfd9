package binding

import (
	"regexp"
	"strings"
)

// Wildcard is the KeyMap bucket applied to every table
const Wildcard = "*"

var qualifiedSpec = regexp.MustCompile(`[\p{L}\p{N}_]+\.[\p{L}\p{N}_]+(=[\p{L}\p{N}_]+\.[\p{L}\p{N}_]+)+`)

// KeyMap maps a table label (or the wildcard) to its ordered join columns.
// It is immutable once parsed.
type KeyMap struct {
	columns map[string][]string
	labels  []string // label-specific buckets in first-seen order
}

// ParseOnSpecs parses --on values.
// A string containing an "A.x=B.y" run anywhere is split on "=" and each token on its
// first "."; anything else is a column name shared by every table. Parsing never fails.
func ParseOnSpecs(specs []string) *KeyMap {
	km := &KeyMap{columns: make(map[string][]string)}

	for _, spec := range specs {
		if !qualifiedSpec.MatchString(spec) {
			km.add(Wildcard, spec)
			continue
		}
		for _, token := range strings.Split(spec, "=") {
			label, column, _ := strings.Cut(token, ".")
			km.add(label, column)
		}
	}

	return km
}

func (km *KeyMap) add(label, column string) {
	if _, seen := km.columns[label]; !seen && label != Wildcard {
		km.labels = append(km.labels, label)
	}
	km.columns[label] = append(km.columns[label], column)
}

// Wildcard returns the columns shared by every table
func (km *KeyMap) Wildcard() []string {
	return km.Columns(Wildcard)
}

// Columns returns the columns bound to exactly this label (no wildcard)
func (km *KeyMap) Columns(label string) []string {
	return append([]string(nil), km.columns[label]...)
}

// Resolve returns the join columns of a table: wildcard columns first, then its own
func (km *KeyMap) Resolve(label string) []string {
	out := km.Wildcard()
	if label != Wildcard {
		out = append(out, km.columns[label]...)
	}
	return out
}

// Labels returns the labels with their own columns, in first-seen order
func (km *KeyMap) Labels() []string {
	return append([]string(nil), km.labels...)
}
