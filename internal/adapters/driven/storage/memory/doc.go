// Package memory provides in-memory implementations of the driven ports.
// They back the "memory" catalog backend and stand in for real stores in tests.
package memory
