package timeslot

import "errors"

var (
	// ErrTimeSlotNotFound возвращается, когда слот не найден
	ErrTimeSlotNotFound = errors.New("timeslot.repository: time slot not found")

	// ErrOverlap возвращается, когда слот пересекается с существующим (EXCLUDE ограничение)
	ErrOverlap = errors.New("timeslot.repository: time slot overlaps an existing slot")

	// ErrInvalidWindow возвращается, когда start_time >= end_time (CHECK ограничение)
	ErrInvalidWindow = errors.New("timeslot.repository: invalid time window")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeslot.repository: failed to scan row")
)
