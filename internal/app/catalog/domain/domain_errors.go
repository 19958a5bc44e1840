package domain

import "errors"

// Domain errors as sentinel values
var (
	ErrCategoryNotFound = errors.New("category not found")
)
