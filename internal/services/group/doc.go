// Package group distributes shared group keys and codes group messages.
//
// A group has one symmetric key for its whole lifetime. At creation the key
// is wrapped once per member under that member's public key; the resulting
// map of wrapped copies is all a carrier ever sees. Members recover the key by
// unwrapping their own entry, and every message in the group is sealed under
// the shared key with a fresh nonce. Reusing one key across messages trades
// per-message forward secrecy for not paying an asymmetric wrap per send.
package group
