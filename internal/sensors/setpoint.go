package sensors

import (
	"fmt"
	"time"

	"github.com/clambin/lyric-monitor/pkg/lyric"
)

var setpointStatusNames = map[string]string{
	lyric.NoHold:        "Following Schedule",
	lyric.PermanentHold: "Held Permanently",
	lyric.TemporaryHold: "Held Temporarily",
	lyric.VacationHold:  "Holiday",
}

// SetpointStatus returns the display label for a thermostat's hold status.
// For a timed hold, until is the time the hold expires. Returns an empty
// string for unknown status codes.
func SetpointStatus(status, until string) string {
	if status == lyric.HoldUntil {
		return "Held until " + until
	}
	return setpointStatusNames[status]
}

// NextOccurrence resolves a time of day ("HH:MM" or "HH:MM:SS") to its next
// occurrence after now, in UTC: today if the time has not yet passed,
// otherwise tomorrow. A time of day equal to now counts as passed and rolls
// over to tomorrow.
func NextOccurrence(value string, now time.Time) (time.Time, error) {
	clock, err := parseTimeOfDay(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}

func parseTimeOfDay(value string) (clock time.Time, err error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if clock, err = time.Parse(layout, value); err == nil {
			return clock, nil
		}
	}
	return time.Time{}, err
}
