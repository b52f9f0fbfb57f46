package render

import "fmt"

// Failure reasons for a transform.
const (
	ReasonDecode = "decode"
	ReasonRender = "render"
)

// Error is a failed upload transform. No partial asset set ever accompanies
// one.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s failed", e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorKind classifies transform failures for status mapping.
func (e *Error) ErrorKind() string { return "transform" }

func decodeError(err error) *Error { return &Error{Reason: ReasonDecode, Err: err} }

func renderError(err error) *Error { return &Error{Reason: ReasonRender, Err: err} }
