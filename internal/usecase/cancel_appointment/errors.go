package cancel_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда бронирования нет (в том числе уже отменено)
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда пользователь отменяет чужое бронирование
	ErrAccessDenied = errors.New("cancel_appointment: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidInput):
		return "invalid"
	case errors.Is(err, ErrAccessDenied):
		return "forbidden"
	case errors.Is(err, ErrAppointmentNotFound):
		return "not_found"
	default:
		return "error"
	}
}
