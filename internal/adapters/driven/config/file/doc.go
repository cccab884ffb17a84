// Package file provides a TOML file-backed configuration store.
//
// Settings live in ~/.seekwell/config.toml. Keys use dot notation
// (e.g. "search.mode") and are stored as nested TOML tables.
package file
