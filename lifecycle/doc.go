// Package lifecycle answers whether an item is expired, removed or recently
// added.
//
// All predicates are total: malformed or missing attributes never panic and
// resolve to the conservative answer (not expired, not removed, not recent).
// Callers pass "now" explicitly so results are reproducible; the Classifier
// type bundles a clock for callers that prefer not to.
package lifecycle
