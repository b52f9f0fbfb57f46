package ipc

import (
	"emblem/internal/daemon"
	"emblem/internal/icons"
)

// SaveIconRequest carries an already-transformed, complete asset set to the
// daemon for storage.
type SaveIconRequest struct {
	Name   string       `json:"name"`
	Assets icons.Assets `json:"assets"`
}

// SaveIconResponse reports the stored record or the domain rejection.
type SaveIconResponse struct {
	OK        bool          `json:"ok"`
	Record    *icons.Record `json:"record,omitempty"`
	Error     string        `json:"error,omitempty"`
	ErrorKind string        `json:"error_kind,omitempty"`
}

// SwitchIconRequest selects a stored icon by id, or the default sentinel.
type SwitchIconRequest struct {
	Selector string `json:"selector"`
}

// SwitchIconResponse reports switch outcome.
type SwitchIconResponse struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}

// DeleteIconRequest removes a stored icon by id.
type DeleteIconRequest struct {
	ID string `json:"id"`
}

// DeleteIconResponse reports delete outcome.
type DeleteIconResponse struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}

// StateRequest fetches the current collection snapshot.
type StateRequest struct{}

// StateResponse contains the collection snapshot.
type StateResponse struct {
	State icons.CollectionState `json:"state"`
}

// WatchRequest long-polls for a state newer than SinceRevision. WaitMillis
// bounds how long the daemon holds the request before answering "no change".
type WatchRequest struct {
	SinceRevision int64 `json:"since_revision"`
	WaitMillis    int   `json:"wait_millis"`
}

// WatchResponse carries the new state when one arrived within the wait
// window.
type WatchResponse struct {
	Changed bool                   `json:"changed"`
	State   *icons.CollectionState `json:"state,omitempty"`
}

// StatusRequest fetches daemon runtime information.
type StatusRequest struct{}

// StatusResponse mirrors the daemon status snapshot.
type StatusResponse struct {
	Status daemon.Status `json:"status"`
}
