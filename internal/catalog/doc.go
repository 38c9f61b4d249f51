// Package catalog queries the external book catalog (the Google Books
// volumes API) and normalizes provider results into the canonical candidate
// shape the rest of the application consumes.
//
// Missing provider fields map to explicit zero values, so downstream code
// never branches on provider quirks. An empty provider result set is an
// empty slice, not an error.
package catalog
