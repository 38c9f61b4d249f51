// Package tui implements the interactive library browser.
//
// The browser is a bubbletea program layered over the same coordinator the
// non-interactive commands use. The coordinator drives rendering through
// the view callbacks; the model here records what the coordinator last
// asked it to show and draws that on every frame. User actions route back
// through the handler callbacks, so the model never mutates the collection
// or talks to the backend itself.
package tui
