package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/location"
	"github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/timeslot"
	"github.com/m04kA/DrivingSchool-BookingService/internal/infra/storage/user"
)

func serializationFailure() error {
	return fmt.Errorf("memstore: %w", &pq.Error{Code: "40001", Message: "could not serialize access"})
}

// TimeSlots returns the slot repository view
func (s *Store) TimeSlots() *TimeSlotRepository { return &TimeSlotRepository{s: s} }

// Appointments returns the appointment repository view
func (s *Store) Appointments() *AppointmentRepository { return &AppointmentRepository{s: s} }

// Locations returns the location repository view
func (s *Store) Locations() *LocationRepository { return &LocationRepository{s: s} }

// Users returns the user repository view
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// TimeSlotRepository mirrors timeslot.Repository
type TimeSlotRepository struct{ s *Store }

func (r *TimeSlotRepository) Create(_ context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("timeslots.Create"); err != nil {
		return nil, err
	}

	start, end := domain.TruncateInstant(slot.StartTime), domain.TruncateInstant(slot.EndTime)
	if !start.Before(end) {
		return nil, timeslot.ErrInvalidWindow
	}
	for _, existing := range s.slots {
		if domain.Overlaps(start, end, existing.StartTime, existing.EndTime) {
			return nil, fmt.Errorf("%w: Create: %w", timeslot.ErrOverlap, &pq.Error{Code: "23P01"})
		}
	}

	s.nextSlotID++
	stored := *slot
	stored.ID = s.nextSlotID
	stored.StartTime, stored.EndTime = start, end
	stored.CreatedAt, stored.UpdatedAt = now(), now()
	s.slots[stored.ID] = &stored

	out := copySlot(&stored)
	return &out, nil
}

func (r *TimeSlotRepository) GetByID(_ context.Context, id int64) (*domain.TimeSlot, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("timeslots.GetByID"); err != nil {
		return nil, err
	}

	slot, ok := s.slots[id]
	if !ok {
		return nil, timeslot.ErrTimeSlotNotFound
	}
	out := copySlot(slot)
	return &out, nil
}

func (r *TimeSlotRepository) GetByStartTime(_ context.Context, startTime time.Time) (*domain.TimeSlot, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("timeslots.GetByStartTime"); err != nil {
		return nil, err
	}

	start := domain.TruncateInstant(startTime)
	for _, slot := range s.slots {
		if slot.StartTime.Equal(start) {
			out := copySlot(slot)
			return &out, nil
		}
	}
	return nil, timeslot.ErrTimeSlotNotFound
}

func (r *TimeSlotRepository) GetIntersecting(_ context.Context, start, end time.Time) ([]*domain.TimeSlot, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("timeslots.GetIntersecting"); err != nil {
		return nil, err
	}

	start, end = domain.TruncateInstant(start), domain.TruncateInstant(end)
	return sortedSlots(s.slots, func(slot *domain.TimeSlot) bool {
		return domain.Overlaps(start, end, slot.StartTime, slot.EndTime)
	}), nil
}

func (r *TimeSlotRepository) ListAvailable(_ context.Context, now time.Time) ([]*domain.TimeSlot, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("timeslots.ListAvailable"); err != nil {
		return nil, err
	}

	now = domain.TruncateInstant(now)
	return sortedSlots(s.slots, func(slot *domain.TimeSlot) bool {
		return slot.IsAvailable() && slot.IsVisible && !slot.StartTime.Before(now)
	}), nil
}

func (r *TimeSlotRepository) ListAll(_ context.Context) ([]*domain.TimeSlot, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("timeslots.ListAll"); err != nil {
		return nil, err
	}

	return sortedSlots(s.slots, func(*domain.TimeSlot) bool { return true }), nil
}

func (r *TimeSlotRepository) MarkBooked(_ context.Context, id, appointmentID int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("timeslots.MarkBooked"); err != nil {
		return err
	}

	slot, ok := s.slots[id]
	if !ok {
		return timeslot.ErrTimeSlotNotFound
	}
	slot.Book(appointmentID)
	slot.UpdatedAt = now()
	return nil
}

func (r *TimeSlotRepository) Release(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("timeslots.Release"); err != nil {
		return err
	}

	slot, ok := s.slots[id]
	if !ok {
		return timeslot.ErrTimeSlotNotFound
	}
	slot.Release()
	slot.UpdatedAt = now()
	return nil
}

func (r *TimeSlotRepository) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("timeslots.Delete"); err != nil {
		return err
	}

	if _, ok := s.slots[id]; !ok {
		return timeslot.ErrTimeSlotNotFound
	}
	delete(s.slots, id)
	// ON DELETE SET NULL
	for _, a := range s.appointments {
		if a.TimeSlotID != nil && *a.TimeSlotID == id {
			a.TimeSlotID = nil
		}
	}
	return nil
}

// AppointmentRepository mirrors appointment.Repository
type AppointmentRepository struct{ s *Store }

func (r *AppointmentRepository) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("appointments.Create"); err != nil {
		return nil, err
	}

	if _, ok := s.users[a.UserID]; !ok {
		return nil, fmt.Errorf("%w: Create: %w", appointment.ErrReferenceNotFound, &pq.Error{Code: "23503"})
	}
	if id, ok := a.NamedLocationID(); ok {
		if _, ok := s.locations[id]; !ok {
			return nil, fmt.Errorf("%w: Create: %w", appointment.ErrReferenceNotFound, &pq.Error{Code: "23503"})
		}
	}
	if a.TimeSlotID != nil {
		for _, existing := range s.appointments {
			if existing.TimeSlotID != nil && *existing.TimeSlotID == *a.TimeSlotID {
				return nil, fmt.Errorf("%w: Create: %w", appointment.ErrSlotTaken, &pq.Error{Code: "23505"})
			}
		}
	}

	s.nextAppointmentID++
	stored := copyAppointment(a)
	stored.ID = s.nextAppointmentID
	stored.StartTime = domain.TruncateInstant(a.StartTime)
	stored.EndTime = domain.TruncateInstant(a.EndTime)
	stored.CreatedAt, stored.UpdatedAt = now(), now()
	s.appointments[stored.ID] = &stored

	out := copyAppointment(&stored)
	return &out, nil
}

func (r *AppointmentRepository) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("appointments.GetByID"); err != nil {
		return nil, err
	}

	a, ok := s.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	out := copyAppointment(a)
	return &out, nil
}

func (r *AppointmentRepository) ListByUser(_ context.Context, userID int64) ([]*domain.Appointment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("appointments.ListByUser"); err != nil {
		return nil, err
	}

	return sortedAppointments(s.appointments, func(a *domain.Appointment) bool { return a.UserID == userID }), nil
}

func (r *AppointmentRepository) ListAll(_ context.Context) ([]*domain.Appointment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("appointments.ListAll"); err != nil {
		return nil, err
	}

	return sortedAppointments(s.appointments, func(*domain.Appointment) bool { return true }), nil
}

func (r *AppointmentRepository) UpdateLocation(_ context.Context, id int64, loc domain.PickupLocation) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("appointments.UpdateLocation"); err != nil {
		return err
	}

	a, ok := s.appointments[id]
	if !ok {
		return appointment.ErrAppointmentNotFound
	}
	if named, ok := loc.(domain.NamedLocation); ok {
		if _, ok := s.locations[named.ID]; !ok {
			return fmt.Errorf("%w: UpdateLocation: %w", appointment.ErrReferenceNotFound, &pq.Error{Code: "23503"})
		}
	}
	a.Location = loc
	a.UpdatedAt = now()
	return nil
}

func (r *AppointmentRepository) SetCalendarEventID(_ context.Context, id int64, eventID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("appointments.SetCalendarEventID"); err != nil {
		return err
	}

	a, ok := s.appointments[id]
	if !ok {
		return appointment.ErrAppointmentNotFound
	}
	a.CalendarEventID = &eventID
	return nil
}

func (r *AppointmentRepository) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("appointments.Delete"); err != nil {
		return err
	}

	if _, ok := s.appointments[id]; !ok {
		return appointment.ErrAppointmentNotFound
	}
	delete(s.appointments, id)
	return nil
}

// LocationRepository mirrors location.Repository
type LocationRepository struct{ s *Store }

func (r *LocationRepository) GetByID(_ context.Context, id int64) (*domain.Location, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("locations.GetByID"); err != nil {
		return nil, err
	}

	loc, ok := s.locations[id]
	if !ok {
		return nil, location.ErrLocationNotFound
	}
	out := *loc
	return &out, nil
}

func (r *LocationRepository) GetByName(_ context.Context, name string) (*domain.Location, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("locations.GetByName"); err != nil {
		return nil, err
	}

	for _, loc := range s.locations {
		if loc.Name == name {
			out := *loc
			return &out, nil
		}
	}
	return nil, location.ErrLocationNotFound
}

func (r *LocationRepository) List(_ context.Context) ([]*domain.Location, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("locations.List"); err != nil {
		return nil, err
	}

	out := make([]*domain.Location, 0, len(s.locations))
	for _, loc := range s.locations {
		c := *loc
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UserRepository mirrors user.Repository
type UserRepository struct{ s *Store }

func (r *UserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("users.GetByID"); err != nil {
		return nil, err
	}

	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	out := *u
	return &out, nil
}
