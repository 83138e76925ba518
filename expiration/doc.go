// Package expiration selects items that will expire within a horizon.
//
// A horizon is either "never" or a number of months. Product versions are
// assumed to ship monthly, so a horizon of N months also admits items whose
// version-encoded expiry is at most N versions past the current release.
package expiration
