package orchestrator

import (
	"fmt"
	"time"
)

// Date format
const (
	DateFormatISO = "2006-01-02"
)

// buildTimeContext tells the model the current local time so "today" and
// "tomorrow" resolve without asking the user.
func buildTimeContext(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	return fmt.Sprintf(
		TimeContextTemplate,
		now.Format("03:04 PM"),
		loc.String(),
		now.Format(DateFormatISO)+" ("+now.Weekday().String()+")",
		now.AddDate(0, 0, 1).Format(DateFormatISO),
	)
}

// LoadLocation resolves an IANA zone name, falling back to the machine zone for empty or unknown names.
func LoadLocation(name string) *time.Location {
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
