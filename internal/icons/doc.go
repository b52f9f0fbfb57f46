// Package icons persists the custom icon collection in SQLite and owns every
// data invariant: the collection ceiling, the always-complete canonical size
// set, unique record ids, and an active selection that never dangles.
//
// The Store serializes mutating calls and performs each one as a single
// read-modify-write transaction against the current persisted state, so
// concurrent add/remove calls from multiple clients both apply and neither is
// lost. Every committed mutation bumps a revision counter and hands a fresh
// CollectionState to the attached Notifier; switching or removing the active
// icon drives the attached Applier.
//
// Treat this package as the single source of truth for collection semantics;
// schema changes bump the version in schema.go.
package icons
