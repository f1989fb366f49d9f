// Package optimistic merges a freshly fetched collection with a locally held
// optimistic record so a just-created item stays visible even when the latest
// fetch predates its write.
package optimistic

import (
	"sort"
	"time"
)

// KeyFunc derives the de-duplication key for a record: the store identifier
// when present, else a composite of natural fields. An empty key means the
// record cannot be safely matched and is skipped by Merge.
type KeyFunc[T any] func(T) string

// Merge returns fetched with pending prepended, unless pending's key is
// already present (the fetched copy is authoritative) or its key is empty.
// fetched is expected newest-first; Merge preserves its order. Merging the
// same pending record twice yields the same result as merging it once.
func Merge[T any](fetched []T, pending *T, key KeyFunc[T]) []T {
	if pending == nil {
		return fetched
	}
	pk := key(*pending)
	if pk == "" {
		return fetched
	}
	for _, r := range fetched {
		if key(r) == pk {
			return fetched
		}
	}
	out := make([]T, 0, len(fetched)+1)
	out = append(out, *pending)
	return append(out, fetched...)
}

// SortNewestFirst orders items by descending when(item). The sort is stable
// so records with equal timestamps (commonly epoch zero from unparseable
// dates) keep their fetched order.
func SortNewestFirst[T any](items []T, when func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return when(items[i]).After(when(items[j]))
	})
}
