package statutory

import "errors"

var (
	ErrConfigNotFound = errors.New("statutory config not found")
	ErrConfigExists   = errors.New("active statutory config already exists for this type and year")
)
