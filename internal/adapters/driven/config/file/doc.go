// Package file provides TOML file-based configuration storage.
//
// Configuration lives at ~/.splgraph/config.toml by default. A missing
// file yields the documented defaults rather than an error, so a fresh
// install needs no setup step.
package file
