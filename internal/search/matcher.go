package search

import "strings"

// Fixed scoring weights. These are part of the result contract and are
// deliberately not configurable.
const (
	exactWeight   = 1.0
	partialWeight = 0.3

	// minPrefixLen is the shortest query term eligible for prefix matching.
	minPrefixLen = 4
)

// isPartialMatch reports whether indexTerm should earn the partial bonus for
// queryTerm. The exact term itself is excluded by the caller.
func isPartialMatch(queryTerm, indexTerm string) bool {
	return isCompoundMatch(queryTerm, indexTerm) || isPrefixMatch(queryTerm, indexTerm)
}

// isCompoundMatch handles hyphenated query terms. A compound query term
// matches an index term that contains it as a substring, or an index term
// that is itself hyphenated and ends with the query term's post-hyphen
// suffix ("error-handling" reaches "exception-handling").
func isCompoundMatch(queryTerm, indexTerm string) bool {
	if !strings.Contains(queryTerm, "-") {
		return false
	}
	if strings.Contains(indexTerm, queryTerm) {
		return true
	}
	_, suffix, _ := strings.Cut(queryTerm, "-")
	if suffix == "" {
		return false
	}
	return strings.Contains(indexTerm, "-") && strings.HasSuffix(indexTerm, suffix)
}

// isPrefixMatch awards the bonus when a sufficiently long query term is a
// prefix of the index term ("effect" reaches "effect-ts").
func isPrefixMatch(queryTerm, indexTerm string) bool {
	return len(queryTerm) >= minPrefixLen && strings.HasPrefix(indexTerm, queryTerm)
}
