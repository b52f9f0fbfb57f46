// Package ipc is the request/response channel between the rendering-capable
// CLI and the privileged daemon: JSON-RPC over a Unix domain socket.
//
// Domain rejections (capacity, not found, validation) travel inside response
// bodies with an ok flag and an error kind, so a caller can always tell "the
// daemon rejected this" apart from "the daemon never answered" — the latter is
// a TransportError, produced on dial failure, broken connections, and call
// timeouts.
package ipc
