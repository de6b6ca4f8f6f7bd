// Package store provides the key-value persistence backing the protocol
// layer.
//
// FileStore keeps one file per key under its root directory with 0600
// permissions and atomic replace-on-write. MemoryStore is the same
// contract over a map, for tests and ephemeral sessions. Values are opaque
// bytes; serialization belongs to the services.
package store
