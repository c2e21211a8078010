package viewmodel

import (
	"fmt"
	"time"
)

// KST is Korea Standard Time. Korea observes no daylight saving time.
var KST = time.FixedZone("KST", 9*60*60)

// FormatKST renders t in KST as "2006-01-02 15:04".
func FormatKST(t time.Time) string {
	return t.In(KST).Format("2006-01-02 15:04")
}

// FormatDate renders the calendar date of t in loc as "2006.01.02". A nil loc
// means KST.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = KST
	}
	return t.In(loc).Format("2006.01.02")
}

// RelativeTime describes t relative to now, in Korean: "방금 전" under a minute,
// then minutes, hours and days up to a week, and the KST date beyond that.
// Times after now are treated as just now.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "방금 전"
	case d < time.Hour:
		return fmt.Sprintf("%d분 전", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d시간 전", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d일 전", int(d/(24*time.Hour)))
	default:
		return FormatDate(t, KST)
	}
}
