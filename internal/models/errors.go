package models

import "errors"

var (
	// ErrIdentifierNotFound is returned when an entity is not part of the collection it is looked up in
	ErrIdentifierNotFound = errors.New("identifier not found")
	// ErrInconsistentOrderState is returned when previous-pointers would form a cycle or a duplicate
	ErrInconsistentOrderState = errors.New("inconsistent order state")
	// ErrIndexOutOfRange is returned when an insert position is outside the collection
	ErrIndexOutOfRange = errors.New("index out of range")
)
