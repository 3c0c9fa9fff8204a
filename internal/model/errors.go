package model

import "errors"

// The three fatal error classes of a forward call. Configuration errors are
// raised at construction, shape errors when concrete tensor shapes first
// materialize, input errors before any computation starts. None of them are
// retried or downgraded.
var (
	ErrConfig = errors.New("invalid configuration")
	ErrShape  = errors.New("shape mismatch")
	ErrInput  = errors.New("invalid input")
)
