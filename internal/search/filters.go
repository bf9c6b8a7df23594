package search

import (
	"strings"

	"github.com/samber/lo"

	"github.com/vhybzOS/vibe-search/internal/store"
)

// matches reports whether doc passes every set filter. Filters are hard
// excludes applied after scoring; they never adjust a score.
func (f Filters) matches(doc *store.Document) bool {
	if f.DocType != "" && doc.DocType != f.DocType {
		return false
	}

	if len(f.Tags) > 0 {
		docTags := lo.Map(doc.Tags, func(t string, _ int) string {
			return strings.ToLower(t)
		})
		allPresent := lo.EveryBy(f.Tags, func(want string) bool {
			needle := strings.ToLower(want)
			return lo.SomeBy(docTags, func(have string) bool {
				return strings.Contains(have, needle)
			})
		})
		if !allPresent {
			return false
		}
	}

	if f.Priority != "" && doc.Metadata.Priority != f.Priority {
		return false
	}

	if f.Category != "" &&
		!strings.Contains(strings.ToLower(doc.Metadata.Category), strings.ToLower(f.Category)) {
		return false
	}

	if f.DateRange != nil {
		if f.DateRange.Start != nil && doc.Timestamp < *f.DateRange.Start {
			return false
		}
		if f.DateRange.End != nil && doc.Timestamp > *f.DateRange.End {
			return false
		}
	}

	return true
}

// Empty reports whether no filter is set.
func (f Filters) Empty() bool {
	return f.DocType == "" && len(f.Tags) == 0 && f.Priority == "" &&
		f.Category == "" && f.DateRange == nil
}
