// Package domain defines the core business entities for Seekwell.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchRequest: A validated hosted search request
//   - SearchResult: The uniform answer-plus-citations result
//   - Citation: A tagged web or file source reference
//   - HistoryEntry: A recorded past search
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
