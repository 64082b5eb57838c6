package kernel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinutesPerDay bounds every minute-of-day value: valid minutes are [0, MinutesPerDay).
	MinutesPerDay = 24 * 60

	// TimeIntervalLayout is the textual form accepted by ParseTimeInterval.
	TimeIntervalLayout = "HH:MM-HH:MM"
)

// ErrTimeIntervalIsNotConstructed is returned when a TimeInterval literal is used
// instead of one produced by NewTimeInterval or ParseTimeInterval.
var ErrTimeIntervalIsNotConstructed = errs.NewValueIsRequiredError(
	"time interval must be created via NewTimeInterval or ParseTimeInterval constructors")

// TimeInterval is a closed-open window of minutes within a single day, used for
// courier working hours and order delivery hours.
//
// Bounds are minute-of-day values in [0, MinutesPerDay). Intervals never wrap
// past midnight: End is always greater than or equal to Start.
//
// Example:
//
//	iv, err := kernel.ParseTimeInterval("10:00-12:30")
//	if err != nil {
//	    // Handle format error
//	}
//	iv.Start()      // 600
//	iv.Duration()   // 150
//	iv.Contains(720) // true
type TimeInterval struct { //nolint:recvcheck //using for validation
	start int
	end   int
	guard guard.ConstructorGuard
}

// NewTimeInterval builds an interval from minute-of-day bounds.
//
// Returns:
//   - TimeInterval: the interval when both bounds are within a day and end >= start
//   - error: ValueIsOutOfRangeError for a bound outside [0, 1439], ValueIsInvalidError
//     when end precedes start
func NewTimeInterval(start, end int) (TimeInterval, error) {
	iv := TimeInterval{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(iv.setStart(start), iv.setEnd(end)); err != nil {
		return TimeInterval{}, err
	}

	if iv.end < iv.start {
		return TimeInterval{}, errs.NewValueIsInvalidErrorWithCause(
			"time interval",
			fmt.Errorf("end %s precedes start %s", formatMinute(end), formatMinute(start)),
		)
	}

	return iv, nil
}

// ParseTimeInterval parses the "HH:MM-HH:MM" form. Any deviation from the layout,
// including out-of-range hours or minutes and a reversed window, yields a
// *errs.FormatError that matches errs.ErrInvalidFormat.
func ParseTimeInterval(raw string) (TimeInterval, error) {
	left, right, ok := strings.Cut(raw, "-")
	if !ok {
		return TimeInterval{}, errs.NewFormatError("time interval", raw, TimeIntervalLayout)
	}

	start, err := parseMinute(left)
	if err != nil {
		return TimeInterval{}, errs.NewFormatErrorWithCause("time interval", raw, TimeIntervalLayout, err)
	}

	end, err := parseMinute(right)
	if err != nil {
		return TimeInterval{}, errs.NewFormatErrorWithCause("time interval", raw, TimeIntervalLayout, err)
	}

	iv, err := NewTimeInterval(start, end)
	if err != nil {
		return TimeInterval{}, errs.NewFormatErrorWithCause("time interval", raw, TimeIntervalLayout, err)
	}

	return iv, nil
}

// ParseTimeIntervals parses every entry and joins all failures, so a caller sees
// each malformed value at once.
func ParseTimeIntervals(raw []string) ([]TimeInterval, error) {
	intervals := make([]TimeInterval, 0, len(raw))
	var parseErrs []error

	for _, r := range raw {
		iv, err := ParseTimeInterval(r)
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}
		intervals = append(intervals, iv)
	}

	if err := errors.Join(parseErrs...); err != nil {
		return nil, err
	}

	return intervals, nil
}

// MustParseTimeInterval is ParseTimeInterval for literals known to be valid.
// It panics on malformed input.
func MustParseTimeInterval(raw string) TimeInterval {
	iv, err := ParseTimeInterval(raw)
	if err != nil {
		panic(err)
	}
	return iv
}

// Validate reports whether the interval was produced by a constructor.
func (t TimeInterval) Validate() error {
	return t.guard.Validate(ErrTimeIntervalIsNotConstructed)
}

// Start returns the first minute of the window.
func (t TimeInterval) Start() int {
	return t.start
}

// End returns the minute right after the window.
func (t TimeInterval) End() int {
	return t.end
}

// Duration is End - Start in minutes.
func (t TimeInterval) Duration() int {
	return t.end - t.start
}

// Contains reports start <= minute < end.
func (t TimeInterval) Contains(minute int) bool {
	return t.start <= minute && minute < t.end
}

// StartOn returns the instant the window opens on the calendar day of date,
// in date's location.
func (t TimeInterval) StartOn(date time.Time) time.Time {
	return StartOfDay(date).Add(time.Duration(t.start) * time.Minute)
}

// String renders the interval back to "HH:MM-HH:MM".
func (t TimeInterval) String() string {
	return formatMinute(t.start) + "-" + formatMinute(t.end)
}

// Equals compares bounds only.
func (t TimeInterval) Equals(other TimeInterval) bool {
	return t.start == other.start && t.end == other.end
}

// AnyContains reports whether minute falls inside at least one interval.
func AnyContains(intervals []TimeInterval, minute int) bool {
	for _, iv := range intervals {
		if iv.Contains(minute) {
			return true
		}
	}
	return false
}

// FormatTimeIntervals renders each interval with String.
func FormatTimeIntervals(intervals []TimeInterval) []string {
	out := make([]string, len(intervals))
	for i, iv := range intervals {
		out[i] = iv.String()
	}
	return out
}

// MinuteOfDay is hour*60 + minute of t in its own location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// StartOfDay truncates t to local midnight of its calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (t *TimeInterval) setStart(start int) error {
	if start < 0 || start >= MinutesPerDay {
		return errs.NewValueIsOutOfRangeError("start minute", start, 0, MinutesPerDay-1)
	}
	t.start = start
	return nil
}

func (t *TimeInterval) setEnd(end int) error {
	if end < 0 || end >= MinutesPerDay {
		return errs.NewValueIsOutOfRangeError("end minute", end, 0, MinutesPerDay-1)
	}
	t.end = end
	return nil
}

func parseMinute(raw string) (int, error) {
	hh, mm, ok := strings.Cut(raw, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%q is not HH:MM", raw)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour %q is out of range", hh)
	}

	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("minute %q is out of range", mm)
	}

	return hour*60 + minute, nil
}

func formatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
