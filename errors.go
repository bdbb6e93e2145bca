package carwars

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	ErrWriteFailed ErrorKind = iota + 1
	ErrIncompleteFrame
	ErrInvalidAction
)

func (k ErrorKind) String() string {
	switch k {
	case ErrWriteFailed:
		return "write failed"
	case ErrIncompleteFrame:
		return "incomplete frame"
	case ErrInvalidAction:
		return "invalid action"
	}
	return fmt.Sprintf("error kind %d", int(k))
}

type ProtocolError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *ProtocolError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ProtocolError) Cause() error {
	return e.Err
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func IsKind(err error, kind ErrorKind) bool {
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		return false
	}
	return perr.Kind == kind
}
