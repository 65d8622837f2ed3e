// Package domain defines the core business entities for ecotrack.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Repository: A discovered repository (the catalog entity)
//   - RepositorySet: Insertion-ordered identity map used while merging
//   - Ecosystem: A named group of search topics
//   - Properties: The typed, flat record written to a catalog store
//   - IndexEntry: The sync engine's view of one persisted record
//   - Settings: Typed application configuration
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
