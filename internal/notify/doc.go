// Package notify is the change fan-out between the icon store and every open
// view. Views subscribe for collection snapshots instead of polling; the Wait
// helper backs the long-poll Watch RPC used by clients in other processes.
package notify
