// Package round runs one rent round: three people submit valuations, the
// engine splits the rent, and the round can be reset for the next month.
//
// Service wraps the store and the fairsplit engine. It validates
// submissions with user-facing messages, refuses duplicates and a fourth
// submission, and records every computed split under its canonical
// fingerprint so recalculating the same round is idempotent.
package round
