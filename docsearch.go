// Package docsearch provides the data and search layer behind a
// documentation browsing site. It loads a hierarchical outline of
// documentation topics, lazily fetches per-page description partitions,
// and searches both outline paths and description text.
//
// This package contains domain types, interfaces and the pure outline and
// indexing logic following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., http/, fs/, slog/).
package docsearch
