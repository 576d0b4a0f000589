package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrSlotOverlap возвращается, когда окно пересекается с существующим слотом
	ErrSlotOverlap = errors.New("create_appointment: time slot overlaps an existing slot")

	// ErrUserNotFound возвращается, когда пользователя нет в базе
	ErrUserNotFound = errors.New("create_appointment: user not found")

	// ErrLocationNotFound возвращается, когда выбранной локации нет в справочнике
	ErrLocationNotFound = errors.New("create_appointment: location not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrSlotOverlap):
		return "conflict"
	case errors.Is(err, ErrInvalidInput):
		return "invalid"
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrLocationNotFound):
		return "not_found"
	default:
		return "error"
	}
}
