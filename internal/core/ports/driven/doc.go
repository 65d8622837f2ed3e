// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RepositorySearcher: Bounded repository search (GitHub search API)
//   - CatalogStore: Paged listing and create/update of catalog records
//     (Notion, SQLite, PostgreSQL or in-memory)
//   - ConfigStore: Layered application settings (TOML file plus environment)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
