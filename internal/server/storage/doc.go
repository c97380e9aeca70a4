// Package storage is the single owner of the guestbook's SQLite handle.
//
// # Overview
//
// Gateway opens the store once at startup, applies the embedded schema and
// hands out the only operations workers may perform: insert an entry, list
// the public entries, and read or bump the visitor counter.
//
// # Concurrency
//
// All calls go through a dbx.Serialized handle: one mutex, one open
// connection, one transaction per call. Two concurrent inserts never
// interleave and a listing always observes a state produced by some
// sequence of complete writes. The lock covers the store interaction only;
// callers render and write responses after the call returns.
package storage
