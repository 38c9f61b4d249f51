// Package main hosts the folio CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into calls
// against the persistence backend and the book catalog: listing and editing
// the collection, catalog search, annotation upkeep, configuration
// scaffolding, and the interactive browser. It centralizes configuration
// resolution and logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
