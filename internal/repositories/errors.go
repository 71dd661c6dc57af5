package repositories

import (
	"errors"
)

// ErrorKind classifies repository failures so handlers can map them
// to the right status code without string matching.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindAlreadyExists
	KindInvalid
)

// RepositoryError represents an error from a metadata repository
type RepositoryError struct {
	Op      string
	Entity  string
	Key     string
	Kind    ErrorKind
	Err     error
	Message string
}

func (e *RepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	prefix := e.Op
	if e.Key != "" {
		prefix += " (" + e.Entity + ": " + e.Key + ")"
	}
	if e.Err != nil {
		return prefix + ": " + e.Err.Error()
	}
	return prefix + ": unknown error"
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(op, entity, key string, err error, message string) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  entity,
		Key:     key,
		Err:     err,
		Message: message,
	}
}

// NotFoundError reports a missing record
func NotFoundError(entity, key string) error {
	return &RepositoryError{
		Op:      "get_" + entity,
		Entity:  entity,
		Key:     key,
		Kind:    KindNotFound,
		Message: entity + " not found: " + key,
	}
}

// AlreadyExistsError reports a uniqueness violation
func AlreadyExistsError(entity, key string) error {
	return &RepositoryError{
		Op:      "create_" + entity,
		Entity:  entity,
		Key:     key,
		Kind:    KindAlreadyExists,
		Message: entity + " already exists: " + key,
	}
}

// IsNotFound reports whether err is a not-found repository error
func IsNotFound(err error) bool {
	var repoErr *RepositoryError
	return errors.As(err, &repoErr) && repoErr.Kind == KindNotFound
}

// IsAlreadyExists reports whether err is a uniqueness violation
func IsAlreadyExists(err error) bool {
	var repoErr *RepositoryError
	return errors.As(err, &repoErr) && repoErr.Kind == KindAlreadyExists
}
