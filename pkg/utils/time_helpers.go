package utils

import "time"

// DayLabel - подпись календарного дня для графиков и разбивок.
func DayLabel(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02.01")
}

// DaysOfWindow перечисляет календарные дни от start до end включительно.
// Нужен для графиков: дни без заказов заполняются нулями.
func DaysOfWindow(start, end time.Time, loc *time.Location) []time.Time {
	start = start.In(loc)
	end = end.In(loc)

	days := make([]time.Time, 0)
	y, m, d := start.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)
	for !day.After(end) {
		days = append(days, day)
		day = day.AddDate(0, 0, 1)
	}
	return days
}
