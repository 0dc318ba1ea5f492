package sync

import "strings"

// StringChanged reports whether two free-text values differ meaningfully.
// Empty and all-whitespace values are one canonical "empty" value, and
// leading/trailing whitespace is ignored: upstream systems accumulate
// incidental whitespace noise in free-text fields, and a whitespace-only
// edit is not a change worth a sync.
//
// Structured fields (booleans, counters, enums) compare by exact equality
// and do not go through this function.
func StringChanged(a, b string) bool {
	return strings.TrimSpace(a) != strings.TrimSpace(b)
}
