// Package main hosts the Emblem CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into IPC calls
// against the daemon: uploading and transforming images, switching and
// removing icons, watching collection changes, and daemon lifecycle control.
// Image decoding and rasterization happen here, in the CLI process; the
// daemon only ever receives finished asset sets.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
