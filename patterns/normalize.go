package patterns

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// bucketMinutes is the mining granularity. Two records whose clock times
// fall inside the same 15-minute window share a bucket.
const bucketMinutes = 15

// NormalizeClock floors an "HH:MM" string to the nearest 15-minute
// boundary below it. Normalizing an already-normalized value is a no-op.
// Malformed input collapses to "00:00" rather than failing the run.
func NormalizeClock(clock string) string {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return "00:00"
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return "00:00"
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		minutes = 0
	}

	minutes = (minutes / bucketMinutes) * bucketMinutes
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// clockOf renders a timestamp as the user-zone wall clock "HH:MM".
func clockOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}

// dayOf returns the user-zone day of week, 0 = Sunday.
func dayOf(t time.Time, loc *time.Location) int {
	return int(t.In(loc).Weekday())
}
