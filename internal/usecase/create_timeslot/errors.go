package create_timeslot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_timeslot: invalid input data")

	// ErrSlotOverlap возвращается, когда слот пересекается с существующим
	// Окно существующего слота доступно через errors.As(err, *domain.OverlapError)
	ErrSlotOverlap = errors.New("create_timeslot: time slot overlaps an existing slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_timeslot: internal error")
)

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrSlotOverlap):
		return "conflict"
	case errors.Is(err, ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
