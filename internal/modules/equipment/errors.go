package equipment

import "errors"

var (
	// ErrRecordNotSaved: the maintenance record insert failed; the equipment was not touched.
	ErrRecordNotSaved = errors.New("maintenance record not saved")
	// ErrScheduleNotSaved: the equipment schedule update failed; the record insert was rolled back.
	ErrScheduleNotSaved = errors.New("maintenance schedule not saved")
)
