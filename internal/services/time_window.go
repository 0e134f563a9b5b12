package services

import (
	"time"

	"courier-system/pkg/types"
)

// ResolveTimeWindow превращает логический период в конкретные границы окна
// в заданной таймзоне: полночь первого дня и 23:59:59.999 последнего.
// Вместе с закрытой границей End всегда отдается EndExclusive = End + 1мс -
// вызывающая сторона выбирает вариант по тому, как у нее устроена проверка
// диапазона (<= или <).
//
// Некорректный пользовательский диапазон (from > to) прокидывается как есть:
// политика обработки - ответственность вызывающего, выборка просто ничего
// не вернет.
func ResolveTimeWindow(period types.Period, now time.Time, loc *time.Location, customFrom, customTo time.Time) types.TimeWindow {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	var first, last time.Time
	switch period {
	case types.PeriodToday:
		first, last = now, now
	case types.PeriodYesterday:
		y := now.AddDate(0, 0, -1)
		first, last = y, y
	case types.PeriodLast7:
		first, last = now.AddDate(0, 0, -6), now
	case types.PeriodLast30:
		first, last = now.AddDate(0, 0, -29), now
	case types.PeriodCustom:
		first, last = customFrom.In(loc), customTo.In(loc)
	default:
		// неизвестный период деградирует в "сегодня"
		first, last = now, now
	}

	start := startOfDay(first, loc)
	end := endOfDay(last, loc)

	return types.TimeWindow{
		Start:        start,
		End:          end,
		EndExclusive: end.Add(time.Millisecond),
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func endOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, 999*int(time.Millisecond), loc)
}
