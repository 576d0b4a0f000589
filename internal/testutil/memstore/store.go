// Package memstore is an in-memory implementation of the storage repositories and the
// transaction manager, used by use case and service tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/txmanager"
)

type txKey struct{}

// Store holds all entities. Transactions are serialized and rolled back on error.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	slots        map[int64]*domain.TimeSlot
	appointments map[int64]*domain.Appointment
	locations    map[int64]*domain.Location
	users        map[int64]*domain.User

	nextSlotID        int64
	nextAppointmentID int64

	failures map[string]error
	retries  map[string]int
	calls    map[string]int
}

// New creates an empty store
func New() *Store {
	return &Store{
		slots:        make(map[int64]*domain.TimeSlot),
		appointments: make(map[int64]*domain.Appointment),
		locations:    make(map[int64]*domain.Location),
		users:        make(map[int64]*domain.User),
		failures:     make(map[string]error),
		retries:      make(map[string]int),
		calls:        make(map[string]int),
	}
}

// FailOn makes the named operation (e.g. "timeslots.MarkBooked") return err until cleared with nil
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// FailTimes makes the named operation return a serialization failure n times
func (s *Store) FailTimes(op string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retries[op] = n
}

// Calls returns how many times the named operation ran
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *Store) enter(op string) error {
	s.calls[op]++
	if n := s.retries[op]; n > 0 {
		s.retries[op] = n - 1
		return serializationFailure()
	}
	return s.failures[op]
}

// DoSerializable runs fn exclusively, restoring the previous state when fn fails.
// Serialization failures injected with FailTimes are retried like txmanager does.
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	var err error
	for attempt := 0; attempt < txmanager.DefaultMaxAttempts; attempt++ {
		err = s.runTx(ctx, fn)
		if _, retryable := txmanager.RetryReason(err); !retryable {
			return err
		}
	}
	return err
}

func (s *Store) runTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	slots             map[int64]domain.TimeSlot
	appointments      map[int64]domain.Appointment
	nextSlotID        int64
	nextAppointmentID int64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		slots:             make(map[int64]domain.TimeSlot, len(s.slots)),
		appointments:      make(map[int64]domain.Appointment, len(s.appointments)),
		nextSlotID:        s.nextSlotID,
		nextAppointmentID: s.nextAppointmentID,
	}
	for id, slot := range s.slots {
		snap.slots[id] = copySlot(slot)
	}
	for id, a := range s.appointments {
		snap.appointments[id] = copyAppointment(a)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots = make(map[int64]*domain.TimeSlot, len(snap.slots))
	for id, slot := range snap.slots {
		slot := slot
		s.slots[id] = &slot
	}
	s.appointments = make(map[int64]*domain.Appointment, len(snap.appointments))
	for id, a := range snap.appointments {
		a := a
		s.appointments[id] = &a
	}
	s.nextSlotID = snap.nextSlotID
	s.nextAppointmentID = snap.nextAppointmentID
}

// AddUser seeds a user
func (s *Store) AddUser(u domain.User) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = &u
	return &u
}

// AddLocation seeds a location
func (s *Store) AddLocation(l domain.Location) *domain.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[l.ID] = &l
	return &l
}

// AddSlot seeds a slot and returns it with an assigned id
func (s *Store) AddSlot(slot domain.TimeSlot) *domain.TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSlotID++
	slot.ID = s.nextSlotID
	slot.StartTime = domain.TruncateInstant(slot.StartTime)
	slot.EndTime = domain.TruncateInstant(slot.EndTime)
	if slot.Status == "" {
		slot.Status = domain.SlotAvailable
	}
	s.slots[slot.ID] = &slot
	out := copySlot(&slot)
	return &out
}

// Slot returns a copy of the stored slot, or nil
func (s *Store) Slot(id int64) *domain.TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return nil
	}
	out := copySlot(slot)
	return &out
}

// Appointment returns a copy of the stored appointment, or nil
func (s *Store) Appointment(id int64) *domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		return nil
	}
	out := copyAppointment(a)
	return &out
}

// AppointmentsForSlot returns every appointment referencing the slot
func (s *Store) AppointmentsForSlot(slotID int64) []*domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Appointment
	for _, a := range s.appointments {
		if a.TimeSlotID != nil && *a.TimeSlotID == slotID {
			c := copyAppointment(a)
			out = append(out, &c)
		}
	}
	return out
}

func copySlot(slot *domain.TimeSlot) domain.TimeSlot {
	out := *slot
	if slot.AppointmentID != nil {
		id := *slot.AppointmentID
		out.AppointmentID = &id
	}
	return out
}

func copyAppointment(a *domain.Appointment) domain.Appointment {
	out := *a
	if a.TimeSlotID != nil {
		id := *a.TimeSlotID
		out.TimeSlotID = &id
	}
	if a.CalendarEventID != nil {
		id := *a.CalendarEventID
		out.CalendarEventID = &id
	}
	return out
}

func sortedSlots(m map[int64]*domain.TimeSlot, keep func(*domain.TimeSlot) bool) []*domain.TimeSlot {
	out := make([]*domain.TimeSlot, 0)
	for _, slot := range m {
		if keep(slot) {
			c := copySlot(slot)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func sortedAppointments(m map[int64]*domain.Appointment, keep func(*domain.Appointment) bool) []*domain.Appointment {
	out := make([]*domain.Appointment, 0)
	for _, a := range m {
		if keep(a) {
			c := copyAppointment(a)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func now() time.Time {
	return time.Now().UTC()
}
