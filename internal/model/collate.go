package model

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// The dashboard's sorts follow Thai collation so that mixed Thai/Latin
// customer and province names order the way the NOC expects. The collator
// keeps internal buffers, so access is serialized.
var (
	collMu sync.Mutex
	coll   = collate.New(language.Thai)
)

// Less reports whether a sorts before b under Thai collation.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Compare returns -1, 0, or 1 comparing a and b under Thai collation.
func Compare(a, b string) int {
	collMu.Lock()
	defer collMu.Unlock()
	return coll.CompareString(a, b)
}

// SortStrings sorts ss in place under Thai collation.
func SortStrings(ss []string) {
	collMu.Lock()
	defer collMu.Unlock()
	coll.SortStrings(ss)
}
