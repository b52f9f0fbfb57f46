// Package daemon coordinates the privileged process: it enforces
// single-instance execution with a file lock, seeds the change hub at
// startup, and exposes the store and hub to the IPC surface.
package daemon
