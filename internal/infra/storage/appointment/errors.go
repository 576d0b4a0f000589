package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда бронирование не найдено
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается, когда на слот уже ссылается другое бронирование
	ErrSlotTaken = errors.New("appointment.repository: time slot already has an appointment")

	// ErrReferenceNotFound возвращается при нарушении внешнего ключа (пользователь, слот или локация)
	ErrReferenceNotFound = errors.New("appointment.repository: referenced entity not found")

	// ErrInvalidLocation возвращается, когда заданы одновременно локация и свой адрес
	ErrInvalidLocation = errors.New("appointment.repository: invalid pickup location")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
