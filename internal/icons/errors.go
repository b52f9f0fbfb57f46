package icons

import "fmt"

// NotFoundError reports an id that is absent from the collection.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("icon %q not found", e.ID)
}

// ErrorKind classifies the failure for status mapping.
func (e *NotFoundError) ErrorKind() string { return "not_found" }

// CapacityError reports a full collection.
type CapacityError struct {
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("icon limit of %d reached", e.Limit)
}

// ErrorKind classifies the failure for status mapping.
func (e *CapacityError) ErrorKind() string { return "capacity" }
