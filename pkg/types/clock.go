package types

import "time"

// Localize shifts an absolute instant by a fixed UTC offset and returns the
// civil weekday and minutes since midnight observed at that offset. The service
// runs with a single configured offset for all psychologists, so the offset is
// passed in rather than looked up per user.
func Localize(instant time.Time, offsetMinutes int) (time.Weekday, int) {
	local := instant.UTC().Add(time.Duration(offsetMinutes) * time.Minute)
	return local.Weekday(), local.Hour()*60 + local.Minute()
}

// LocalDate returns the civil calendar date observed at the given UTC offset.
func LocalDate(instant time.Time, offsetMinutes int) time.Time {
	local := instant.UTC().Add(time.Duration(offsetMinutes) * time.Minute)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// InstantAt converts a civil date plus minutes-since-midnight at the given UTC
// offset back into an absolute UTC instant. It is the inverse of Localize for
// values produced against the same offset.
func InstantAt(date time.Time, minutes int, offsetMinutes int) time.Time {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.
		Add(time.Duration(minutes) * time.Minute).
		Add(-time.Duration(offsetMinutes) * time.Minute)
}
