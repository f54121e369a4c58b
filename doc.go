// Package memocache provides a concurrent read-through cache with time based
// expiry.
//
// Values are computed lazily by a caller supplied loader. For any key the
// loader runs at most once even under simultaneous first-time requests: the
// directory lock is held only for lookups and structural changes, and the
// computation itself runs under an independent per-entry lock, so requests
// for distinct keys never wait on each other.
//
// Expired entries are removed by a background sweeper. Entries are kept in
// insert/overwrite order, so the sweeper inspects only the oldest prefix of
// the cache and stops at the first unexpired entry.
package memocache
