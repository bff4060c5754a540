package ports

import "encoding/json"

// ResourceCache is a key-addressed cache of upstream read responses with
// per-key issue ordering.
//
// The fetch protocol is Begin → network call → Complete. Begin hands out a
// per-key sequence number; Complete applies the response only when it is
// still the newest outcome for that key, so a slow response for an
// earlier-issued fetch can never overwrite newer state. Invalidate marks
// matching entries stale — the value survives for stale-while-revalidate,
// but the next read goes to the network and any in-flight fetch begun
// before the invalidation is discarded on completion.
type ResourceCache interface {
	Fresh(key string) (json.RawMessage, bool)
	Stale(key string) (json.RawMessage, bool)
	Begin(key string) uint64
	Complete(key string, seq uint64, value json.RawMessage) bool
	Invalidate(prefix string)
}
