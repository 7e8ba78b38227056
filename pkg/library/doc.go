// Package library implements the persistence boundary around the template
// store: file-backed and MongoDB-backed loading and saving, plus a file
// watcher for live reload.
//
// The boundary absorbs failures so the engine never sees them: loading
// returns an empty library on any decode failure, and saving reduces write
// failures to either a storage-quota advisory (the one user-visible
// failure) or a logged-and-swallowed warning. The engine receives the
// resulting store as a plain value and never calls this package directly.
package library
