// Package router maps location fragments to view handlers.
//
// Folio keeps the original hash-navigation model: "#library" shows the
// collection, "#book-<id>" shows a single book, and every navigation is a
// fragment change. The Router owns no view state; it resolves a fragment to
// a registered handler and falls back to the library handler for anything
// unrecognized. A Location supplies the current fragment and notifies the
// router when it changes, which is how programmatic navigation and
// back-navigation re-invoke the active handler.
package router
