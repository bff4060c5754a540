package domain

import (
	"sort"
	"strings"
)

// Cache keys are derived deterministically from (resource, user, shape).
// The resource segment comes first so one mutation can invalidate every
// variant — the unscoped collection, filtered collections, and per-entity
// entries — with a single prefix.

// CollectionCacheKey addresses a (possibly filtered) collection read as seen
// by one user. Filter order does not affect the key.
func CollectionCacheKey(res Resource, userID string, filter map[string]string) string {
	var b strings.Builder
	b.WriteString(string(res))
	b.WriteString("/collection/")
	b.WriteString(userID)

	if len(filter) > 0 {
		keys := make([]string, 0, len(filter))
		for k := range filter {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString("/")
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(filter[k])
		}
	}
	return b.String()
}

// EntityCacheKey addresses a single entity read as seen by one user.
func EntityCacheKey(res Resource, userID, id string) string {
	return string(res) + "/entity/" + userID + "/" + id
}

// InvalidationPrefix covers every cache entry a mutation against the
// resource can plausibly affect. Centralised here so call sites never
// hand-roll their own invalidation lists.
func InvalidationPrefix(res Resource) string {
	return string(res) + "/"
}
