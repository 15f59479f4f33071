package attendance

import "errors"

var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrDuplicateAttendance = errors.New("attendance record already exists for this date")
	ErrInvalidTimeFormat   = errors.New("invalid date or time format")
)
