// Package verify computes safety numbers.
//
// A safety number fingerprints the unordered pair of two public keys as 60
// decimal digits the parties read to each other over a trusted channel. Both
// sides always derive the same number, and substituting either key changes
// it with overwhelming probability.
package verify
