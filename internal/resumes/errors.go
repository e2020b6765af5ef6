package resumes

import "errors"

// ErrNotFound indicates no record exists for the query.
var ErrNotFound = errors.New("not found")
