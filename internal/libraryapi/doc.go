// Package libraryapi is the thin request/response wrapper around the
// library persistence backend.
//
// Books live under /books and annotations under /books/{id}/comments and
// /comments/{id}; every operation returns the decoded payload as domain
// types or fails with an APIError carrying the server's error message. The
// package performs no caching and no retries; the coordinator decides what
// to do with failures.
package libraryapi
