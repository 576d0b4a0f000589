package domain

import "time"

// TruncateInstant normalizes an instant to whole seconds in UTC.
// All stored and compared slot boundaries pass through it.
func TruncateInstant(t time.Time) time.Time {
	return t.Truncate(time.Second).UTC()
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflict returns the first slot that overlaps [start, end), or nil.
// Slots are expected in ascending start order.
func FindConflict(start, end time.Time, slots []*TimeSlot) *TimeSlot {
	start, end = TruncateInstant(start), TruncateInstant(end)
	for _, slot := range slots {
		if Overlaps(start, end, TruncateInstant(slot.StartTime), TruncateInstant(slot.EndTime)) {
			return slot
		}
	}
	return nil
}

// IsValidWindow returns true if start is strictly before end after truncation
func IsValidWindow(start, end time.Time) bool {
	return TruncateInstant(start).Before(TruncateInstant(end))
}
