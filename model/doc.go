// Package model defines the core types shared by every search and filter
// component of the dictionary.
//
// # Item
//
// An Item is one metric, ping or tag record. Items are read-only to the
// search core: filters and rankers return new collections that reference the
// same *Item values in a different order or subset.
//
// # Expiry
//
// The expires attribute of an item arrives in one of several encodings: an
// ISO calendar date, a product version number (as a JSON number or a numeric
// string), the literal "never", or nothing at all. ParseExpiry turns the raw
// value into a tagged union once, at ingestion:
//
//	e := model.ParseExpiry("2025-06-30") // e.Kind == model.ExpiryDate
//	e = model.ParseExpiry("105")         // e.Kind == model.ExpiryVersion
//	e = model.ParseExpiry("never")       // e.Kind == model.ExpiryNever
//
// Values that fit none of the encodings become ExpiryInvalid and are treated
// as "not expired" everywhere.
package model
