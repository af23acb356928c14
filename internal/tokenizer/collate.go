package tokenizer

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collator performs locale-aware comparison. Loose collation ignores case,
// width, and diacritics, matching how song and artist lists are presented.
var (
	collMu   sync.Mutex
	collator = collate.New(language.Und, collate.Loose)
)

// Compare returns -1, 0, or 1 comparing a and b with locale-aware
// collation.
func Compare(a, b string) int {
	collMu.Lock()
	defer collMu.Unlock()
	return collator.CompareString(a, b)
}

// SortByKey sorts items in place by the given string key using
// locale-aware collation. The sort is stable, so ties keep their
// insertion order.
func SortByKey[T any](items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return Compare(key(items[i]), key(items[j])) < 0
	})
}
