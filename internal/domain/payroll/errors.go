package payroll

import "errors"

var (
	ErrRunNotFound           = errors.New("payroll run not found")
	ErrEntryNotFound         = errors.New("payroll entry not found")
	ErrContributionsNotFound = errors.New("contributions record not found")
	ErrDuplicateEntry        = errors.New("payroll entry already exists for this run and employee")
	ErrEntryFinalized        = errors.New("payroll entry is finalized and cannot be edited")
	ErrInvalidPeriod         = errors.New("invalid payroll period")
)
