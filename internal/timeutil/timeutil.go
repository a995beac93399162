package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// pacific is the game-day partitioning zone. Falls back to a fixed offset
// when the tz database is unavailable.
var pacific = loadPacific()

func loadPacific() *time.Location {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		return time.FixedZone("PST", -8*60*60)
	}
	return loc
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// PacificDate returns the Pacific-time game day for t. All cache keys are
// partitioned by this date so late east-coast games stay on one key.
func PacificDate(t time.Time) string {
	return t.In(pacific).Format(DateLayout)
}

// PreviousPacificDate returns the Pacific game day before t's.
func PreviousPacificDate(t time.Time) string {
	return t.In(pacific).AddDate(0, 0, -1).Format(DateLayout)
}

// PacificDayBounds returns the UTC instants bounding t's Pacific game day,
// end-exclusive.
func PacificDayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(pacific)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, pacific)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}
