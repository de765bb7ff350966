package utils

import "time"

const dbDateTimeLayout = "2006-01-02 15:04:05"

// NowUTC returns the current time in UTC. All persisted timestamps use UTC so
// lexicographic ordering of the stored strings matches chronological order.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatDateTimeForDB formats a time for DATETIME columns.
func FormatDateTimeForDB(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dbDateTimeLayout)
}

// ParseDBDateTime parses a DATETIME column value back into a time.
func ParseDBDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(dbDateTimeLayout, s, time.UTC)
}
