package resource

import (
	"errors"
	"fmt"
)

// Op names the store operation that failed.
type Op string

const (
	OpFetch   Op = "fetch"
	OpSave    Op = "save"
	OpDelete  Op = "delete"
	OpReplace Op = "replace"
)

// statusCoder is satisfied by transport errors carrying an HTTP status.
type statusCoder interface {
	StatusCode() int
}

// StatusOf returns the HTTP status carried by err, or 0 for transport
// failures that never produced a response.
func StatusOf(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}

// FetchError reports a failed collection load.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SaveError reports a rejected create, update or single-item mutation.
type SaveError struct {
	Resource string
	Op       Op
	ID       int64
	Err      error
}

func (e *SaveError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// DeleteError reports a failed removal. It is logged, never returned to
// callers of PendingDelete.Confirm.
type DeleteError struct {
	Resource string
	ID       int64
	Err      error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete %s %d: %v", e.Resource, e.ID, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }
