// Package domain defines the data model and contracts of the protocol
// layer: identity and key types, wire records, the session object, typed
// errors and the interfaces (crypto provider, key-value store, services)
// everything else is built against. It contains no crypto of its own.
package domain
