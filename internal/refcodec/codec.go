// Package refcodec converts between a set of identity references and
// the single comma-delimited string field the backing store keeps them
// in. The codec lives only at the persistence boundary; everywhere
// else references are native string slices.
package refcodec

import "strings"

const delimiter = ","

// Encode joins ids with the delimiter. Order and duplicates are
// preserved as given.
func Encode(ids []string) string {
	return strings.Join(ids, delimiter)
}

// Decode splits s on the delimiter, discarding empty and
// whitespace-only segments. Decode(Encode(x)) reproduces x with empty
// entries removed.
func Decode(s string) []string {
	if s == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(s, delimiter) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		ids = append(ids, part)
	}
	return ids
}
