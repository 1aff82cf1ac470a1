// Package vocabulary holds the static code tables used to interpret SPL
// documents: code-system OIDs, LOINC document-type and section codes, the
// presence-flag code sets, and DEA schedule codes.
//
// Every table is an immutable package-level value initialized at startup.
// Lookups that miss return ok=false rather than an error; unrecognized
// codes are an expected part of the corpus.
package vocabulary
