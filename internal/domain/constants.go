package domain

// Calendar sync outcomes reported with every booking
type CalendarSyncStatus string

const (
	CalendarSynced  CalendarSyncStatus = "synced"
	CalendarFailed  CalendarSyncStatus = "failed"
	CalendarSkipped CalendarSyncStatus = "skipped"
)

// BookingResult is the outcome of a successful booking.
// The appointment is committed regardless of CalendarSync.
type BookingResult struct {
	Appointment  *Appointment
	CalendarSync CalendarSyncStatus
}

// Calendar event summary prefixes
const (
	ExamSummaryPrefix   = "Examen"
	LessonSummaryPrefix = "Rijles"
)

// Display formats
const (
	ClockFormat = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxAddressFieldLength = 255
	MaxLocationNameLength = 255
)
