package normalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
)

var (
	isoDurationRe   = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?$`)
	humanDurationRe = regexp.MustCompile(`^(?:(\d+)\s*h)?\s*(?:(\d+)\s*m(?:in)?)?$`)
	clockDurationRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"03:04 PM",
	"3:04 pm",
	"3:04pm",
}

type parsed struct {
	date bool
	time bool
}

// parseEndpoint reads date and clock time from the endpoint fields. A full
// dateTime wins over the separate date and time fields.
func parseEndpoint(raw entity.RawEndpoint, loc *time.Location) (time.Time, string, parsed) {
	var out parsed
	var day time.Time
	clock := ""

	if value := strings.TrimSpace(raw.DateTime); value != "" {
		if t, ok := parseDateTime(value, loc); ok {
			return entity.DateOnly(t), t.Format(entity.TimeLayout), parsed{date: true, time: true}
		}
	}

	if value := strings.TrimSpace(raw.Date); value != "" {
		if t, err := entity.ParseDate(value, loc); err == nil {
			day, out.date = t, true
		} else if t, ok := parseDateTime(value, loc); ok {
			day, out.date = entity.DateOnly(t), true
		}
	}

	if value := strings.TrimSpace(raw.Time); value != "" {
		if c, ok := ParseClock(value); ok {
			clock, out.time = c, true
		} else if t, ok := parseDateTime(value, loc); ok {
			clock, out.time = t.Format(entity.TimeLayout), true
			if !out.date {
				day, out.date = entity.DateOnly(t), true
			}
		}
	}

	return day, clock, out
}

func parseDateTime(value string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateTimeLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339 {
			t, err = time.Parse(layout, value)
			if err == nil {
				// keep the provider's local wall clock, stored in the search location
				t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
			}
		} else {
			t, err = time.ParseInLocation(layout, value, loc)
		}
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseClock renders 12h or 24h clock strings as 24h HH:MM.
func ParseClock(value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(entity.TimeLayout), true
		}
	}
	upper := strings.ToUpper(value)
	if upper != value {
		for _, layout := range clockLayouts {
			if t, err := time.Parse(layout, upper); err == nil {
				return t.Format(entity.TimeLayout), true
			}
		}
	}
	return "", false
}

// ParseDuration understands ISO-8601 (PT7H25M), "7h 25m", "45m", "7:25"
// and plain minute counts.
func ParseDuration(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	lower := strings.ToLower(value)

	if m := isoDurationRe.FindStringSubmatch(strings.ToUpper(value)); m != nil {
		return positive(atoi(m[1])*24*60 + atoi(m[2])*60 + atoi(m[3]))
	}
	if m := clockDurationRe.FindStringSubmatch(lower); m != nil {
		return positive(atoi(m[1])*60 + atoi(m[2]))
	}
	if m := humanDurationRe.FindStringSubmatch(lower); m != nil && (m[1] != "" || m[2] != "") {
		return positive(atoi(m[1])*60 + atoi(m[2]))
	}
	if n, err := strconv.Atoi(lower); err == nil {
		return positive(n)
	}
	return 0, false
}

// FormatDuration renders minutes as "7h 25m".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

func positive(n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	return n, true
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
