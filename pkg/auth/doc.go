// Package auth implements the token lifecycle for the verification gateway:
// client-credentials exchange, in-memory caching with expiry, permission
// inventory, and invalidation.
//
// The Manager guarantees a valid token to every outbound call while
// minimizing fetches. A cached, unexpired token is returned without network
// access; concurrent callers that all observe a miss collapse into exactly
// one fetch via singleflight, and the remaining callers wait for that fetch
// and read the refreshed slot.
//
// The token slot is the only shared mutable state. It is replaced as a whole
// value on refresh, never mutated field by field, so no reader observes a
// half-updated token. The slot lives behind the TokenStore interface; the
// default store is in-process memory, and FileStore is provided for hosts
// that want several worker processes to share one token. A refreshed token's
// permission list is authoritative the moment it is stored: scope checks
// always read the current slot.
package auth
