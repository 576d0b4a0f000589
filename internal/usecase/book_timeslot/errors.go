package book_timeslot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_timeslot: invalid input data")

	// ErrSlotNotAvailable возвращается, когда слота нет или он уже забронирован
	ErrSlotNotAvailable = errors.New("book_timeslot: time slot is not available")

	// ErrLocationNotFound возвращается, когда выбранной локации нет в справочнике
	ErrLocationNotFound = errors.New("book_timeslot: location not found")

	// ErrUserNotFound возвращается, когда пользователя из токена нет в базе
	ErrUserNotFound = errors.New("book_timeslot: user not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_timeslot: internal error")
)

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrSlotNotAvailable):
		return "conflict"
	case errors.Is(err, ErrInvalidInput):
		return "invalid"
	case errors.Is(err, ErrLocationNotFound), errors.Is(err, ErrUserNotFound):
		return "not_found"
	default:
		return "error"
	}
}
