// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Discovery fans ecosystems out into repository searches, CatalogSync
// reconciles the result with the catalog store, and Tracker sequences
// both into one run. Every call is made from a single goroutine; pacing
// between requests is fixed, never adaptive.
package services
