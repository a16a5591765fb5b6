// Package datemath resolves spoken day references ("tomorrow", "next friday",
// "in 3 days") to calendar days.
package datemath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownDay is returned for phrases the parser does not understand.
var ErrUnknownDay = errors.New("unknown day")

var (
	inDurationRe = regexp.MustCompile(`^in (\d+|a|an|one|two|three|four|five|six|seven) (day|days|week|weeks)$`)

	weekdays = map[string]time.Weekday{
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
	}

	spokenNumbers = map[string]int{
		"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4,
		"five": 5, "six": 6, "seven": 7,
	}
)

// Parser resolves day phrases in one timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a parser for loc. A nil loc means time.Local.
func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{location: loc}
}

// Day returns the [start, end) bounds of the day the phrase names, relative to base.
//
// Understood: today, tonight, tomorrow, day after tomorrow, yesterday,
// "in N days|weeks", "<weekday>", "this <weekday>", "next <weekday>" and
// ISO dates (2006-01-02). A bare or "this" weekday is the next occurrence
// counting today; "next" skips today.
func (p *Parser) Day(phrase string, base time.Time) (time.Time, time.Time, error) {
	start, err := p.parse(phrase, base)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}

func (p *Parser) parse(phrase string, base time.Time) (time.Time, error) {
	phrase = normalize(phrase)

	switch phrase {
	case "today", "tonight":
		return p.startOfDay(base), nil
	case "tomorrow":
		return p.startOfDay(base.AddDate(0, 0, 1)), nil
	case "day after tomorrow", "the day after tomorrow":
		return p.startOfDay(base.AddDate(0, 0, 2)), nil
	case "yesterday":
		return p.startOfDay(base.AddDate(0, 0, -1)), nil
	}

	if m := inDurationRe.FindStringSubmatch(phrase); m != nil {
		amount, ok := spokenNumbers[m[1]]
		if !ok {
			amount, _ = strconv.Atoi(m[1])
		}
		if strings.HasPrefix(m[2], "week") {
			amount *= 7
		}
		return p.startOfDay(base.AddDate(0, 0, amount)), nil
	}

	if day, ok := strings.CutPrefix(phrase, "next "); ok {
		return p.weekday(day, base, true)
	}
	if day, ok := strings.CutPrefix(phrase, "this "); ok {
		return p.weekday(day, base, false)
	}
	if _, ok := weekdays[phrase]; ok {
		return p.weekday(phrase, base, false)
	}

	if t, err := time.ParseInLocation(time.DateOnly, phrase, p.location); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownDay, phrase)
}

func (p *Parser) weekday(name string, base time.Time, skipToday bool) (time.Time, error) {
	target, ok := weekdays[name]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownDay, name)
	}

	today := base.In(p.location).Weekday()
	daysUntil := int(target - today)
	if daysUntil < 0 || (daysUntil == 0 && skipToday) {
		daysUntil += 7
	}
	return p.startOfDay(base.AddDate(0, 0, daysUntil)), nil
}

// startOfDay returns midnight at the start of t's day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// normalize lowercases, trims, drops a leading "on" and trailing punctuation.
func normalize(phrase string) string {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	phrase = strings.TrimRight(phrase, "?.!")
	phrase = strings.TrimPrefix(phrase, "on ")
	return strings.Join(strings.Fields(phrase), " ")
}
