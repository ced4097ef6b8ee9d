package querycache

import (
	"strings"
)

const keySep = "|"

// Key identifies a cached query: the resource name followed by its
// parameters, e.g. Key{"communities", "page=1"}.
type Key []string

// String renders the canonical form "communities|page=1".
func (k Key) String() string {
	return strings.Join(k, keySep)
}

// matchesPrefix reports whether key equals prefix or lies below it. Matching
// is per segment: "communities" covers "communities|page=1" but not
// "communities-archive".
func matchesPrefix(key, prefix string) bool {
	if prefix == "" {
		return true
	}
	return key == prefix || strings.HasPrefix(key, prefix+keySep)
}
