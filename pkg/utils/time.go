package utils

import "time"

// DayBounds returns the first and last second of the local calendar day
// containing t. Query windows over created_at and due_date are inclusive of
// both bounds.
func DayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end := time.Date(year, month, day, 23, 59, 59, 0, t.Location())
	return start, end
}

// EndOfDay returns the last second of the local calendar day containing t.
// Due dates given as bare calendar dates are stored as this instant.
func EndOfDay(t time.Time) time.Time {
	_, end := DayBounds(t)
	return end
}
