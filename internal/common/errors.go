// Package common contains shared sentinel errors and small utilities used
// across stocktrack components. Callers should use errors.Is to match the
// sentinel values.
package common

import "errors"

var (
	// ErrValidation marks a draft rejected locally, before any network call.
	ErrValidation = errors.New("validation failed")

	// ErrInternal is a generic internal flow-control error.
	ErrInternal = errors.New("internal error")
)
