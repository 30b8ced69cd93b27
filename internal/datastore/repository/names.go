package repository

import (
	"strings"

	"golang.org/x/text/cases"
)

// foldName normalizes a name for duplicate detection: surrounding
// whitespace is dropped and case is folded.
func foldName(name string) string {
	// A Caser holds state; build one per call.
	return cases.Fold().String(strings.TrimSpace(name))
}

// findByName scans items for one whose name matches name, skipping the
// row with excludeID (0 excludes nothing). Names carry no unique index,
// so this is a full scan.
func findByName[T any](items []T, name string, nameOf func(*T) string, idOf func(*T) uint, excludeID uint) *T {
	folded := foldName(name)
	for i := range items {
		item := &items[i]
		if excludeID != 0 && idOf(item) == excludeID {
			continue
		}
		if foldName(nameOf(item)) == folded {
			return item
		}
	}
	return nil
}
