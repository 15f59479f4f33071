package leave

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrBalanceNotFound       = errors.New("leave balance not found")
	ErrBalanceExists         = errors.New("leave balance already exists")
	ErrInsufficientBalance   = errors.New("insufficient leave balance")
	ErrLeaveAlreadyProcessed = errors.New("leave request already processed")

	// ErrBalanceConflict signals a lost compare-and-swap on the balance
	// row: another approval touched it first. Callers may retry.
	ErrBalanceConflict = errors.New("leave balance was modified concurrently")
)
