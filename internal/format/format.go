// Package format renders epoch timestamps as the short date, time, and
// weekday strings shown on the departure board.
//
// All functions are pure. Callers choose the time zone by passing a
// *time.Location to FromEpochSeconds; the formatting functions then read the
// wall-clock fields of whatever time.Time they are given.
package format

import (
	"strconv"
	"strings"
	"time"
)

// DateStyle selects how FormatDate fills the middle field.
type DateStyle string

const (
	// DateStyleLegacy writes the weekday index (0=Sunday) where the day of
	// month would normally go. Existing board displays depend on it.
	DateStyleLegacy DateStyle = "legacy"

	// DateStyleCalendar writes the day of month.
	DateStyleCalendar DateStyle = "calendar"
)

// ParseDateStyle validates s, returning ok=false for unknown styles.
func ParseDateStyle(s string) (DateStyle, bool) {
	switch DateStyle(strings.ToLower(strings.TrimSpace(s))) {
	case DateStyleLegacy:
		return DateStyleLegacy, true
	case DateStyleCalendar:
		return DateStyleCalendar, true
	}
	return "", false
}

var weekdays = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// FromEpochSeconds converts a Unix epoch in seconds to a time in loc.
// A nil loc means time.Local.
func FromEpochSeconds(epoch int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(epoch, 0).In(loc)
}

// LeftPadTwoDigits renders n with a leading zero when 0 <= n < 10.
// Every other value, including negatives and n >= 100, is rendered as plain
// decimal with no padding or truncation.
func LeftPadTwoDigits(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// FormatTime renders t as "H:MM AM" or "H:MM PM" on a 12-hour clock.
// Midnight is 12:00 AM and noon is 12:00 PM.
func FormatTime(t time.Time) string {
	h := t.Hour()
	hour12 := h % 12
	if hour12 == 0 {
		hour12 = 12
	}

	var b strings.Builder
	b.WriteString(strconv.Itoa(hour12))
	b.WriteByte(':')
	b.WriteString(LeftPadTwoDigits(t.Minute()))
	if h < 12 {
		b.WriteString(" AM")
	} else {
		b.WriteString(" PM")
	}
	return b.String()
}

// FormatDate renders t as "MM-DD-YYYY" using the legacy style, where DD is
// the weekday index (00-06) and not the day of month.
func FormatDate(t time.Time) string {
	return FormatDateStyle(t, DateStyleLegacy)
}

// FormatDateStyle renders t as "MM-DD-YYYY" with DD chosen by style.
// Unknown styles fall back to DateStyleLegacy.
func FormatDateStyle(t time.Time, style DateStyle) string {
	day := int(t.Weekday())
	if style == DateStyleCalendar {
		day = t.Day()
	}
	return LeftPadTwoDigits(int(t.Month())) + "-" +
		LeftPadTwoDigits(day) + "-" +
		strconv.Itoa(t.Year())
}

// FormatWeekdayName returns the full English weekday name of t.
func FormatWeekdayName(t time.Time) string {
	return weekdays[t.Weekday()]
}
