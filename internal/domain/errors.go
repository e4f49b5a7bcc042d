package domain

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNoCategories     = errors.New("no categories")
	ErrPageNotFound     = errors.New("page out of range")
)

// ErrorKind classifies a failure independently of its transport mapping
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindValidationFailed
	KindConstraintViolation
	KindStoreUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindValidationFailed:
		return "validation failed"
	case KindConstraintViolation:
		return "constraint violation"
	case KindStoreUnavailable:
		return "store unavailable"
	default:
		return "internal"
	}
}

// Error is a classified error raised by an operation
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// E wraps err with a kind and the operation that produced it
func E(kind ErrorKind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of the outermost classified error in err's chain.
// Unclassified errors are KindInternal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
