package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// BusinessDate maps a timestamp to its trading day; anything before
// startHour belongs to the previous day.
func BusinessDate(t time.Time, startHour int) string {
	if t.Hour() < startHour {
		t = t.AddDate(0, 0, -1)
	}
	return t.Format(DateLayout)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// MonthRange returns the first and last date of a month.
func MonthRange(year, month int) (string, string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return FormatDate(first), FormatDate(last)
}
