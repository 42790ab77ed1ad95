// Package canonical produces RFC 8785 canonical JSON and content-addressed
// fingerprints for computed rent splits.
//
// Canonical JSON differs from encoding/json in four ways:
//   - object keys are sorted by UTF-16 code units
//   - strings are NFC normalized and never HTML-escaped
//   - floats are forbidden; money is carried as integer cents
//   - null is forbidden
//
// Fingerprints are SHA-256 over a domain prefix, a 0x00 separator and the
// canonical bytes, so identical inputs always produce identical IDs.
package canonical
