// Package library holds the in-memory book collection and the coordinator
// that keeps it consistent with the persistence backend.
//
// The Manager is the single authority over the collection: every
// user-initiated mutation flows through it, issues exactly one backend call,
// and applies the local change only after that call succeeds
// (confirm-then-apply). Views receive data plus callback handles and never
// reach back into coordinator internals; routing between the library view
// and the book detail view is driven by fragment changes through the router
// package.
//
// Book carries its annotation sequence and mirrors the same
// confirm-then-apply discipline for annotation mutations, delegating to the
// injected store before touching local state.
package library
