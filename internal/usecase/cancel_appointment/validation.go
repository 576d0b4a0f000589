package cancel_appointment

import "fmt"

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentId must be positive", ErrInvalidInput)
	}
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actor id must be positive", ErrInvalidInput)
	}
	if !req.ActorRole.IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.ActorRole)
	}
	return nil
}
