package weatherfmt

import (
	"fmt"
	"strconv"
	"time"
)

var weekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

func Weekday(t time.Time) string {
	return weekdays[t.Weekday()]
}

// FormatDay renders a unix timestamp as "M/D(요일)" in loc.
func FormatDay(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t := time.Unix(ts, 0).In(loc)
	return fmt.Sprintf("%d/%d(%s)", int(t.Month()), t.Day(), Weekday(t))
}

// FormatToday renders the header date as "M월 D일 (요일)".
func FormatToday(t time.Time) string {
	return fmt.Sprintf("%d월 %d일 (%s)", int(t.Month()), t.Day(), Weekday(t))
}

func FormatTemp(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "°"
}

// FormatNumber prints v with the fewest digits that round-trip, so 65 stays "65".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
