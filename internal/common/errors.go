package common

import "errors"

var (
	// ErrorNotFound is matched by lookups of a missing record or collection.
	ErrorNotFound = errors.New("not found")

	// ErrorInvalidArgument marks input rejected before reaching a collaborator.
	ErrorInvalidArgument = errors.New("invalid argument")
)
