package adapter

import "time"

// TodayWindow returns the half-open range used for "today" queries:
// [00:00:00, 23:59:59). The end boundary is excluded, so an appointment at
// exactly 23:59:59 does not count as today. Legacy of the stored-timestamp
// string comparison the dashboard always used; kept because the counts
// must keep matching it.
func TodayWindow(now time.Time) (from, to time.Time) {
	y, m, d := now.Date()
	from = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	to = from.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return from, to
}

// MonthStart returns midnight on the first day of now's calendar month.
func MonthStart(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
}
