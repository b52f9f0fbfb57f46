// Package validate holds the stateless checks applied to candidate icon
// uploads: the media type allow-list, the upload size ceiling, and the
// collection capacity ceiling. Each failure carries one fixed user-facing
// message keyed by violation kind and has no side effects.
package validate
