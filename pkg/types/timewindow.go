package types

import "time"

// Period - логический период отчета, который выбирает пользователь на экране.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodLast7     Period = "last7"
	PeriodLast30    Period = "last30"
	PeriodCustom    Period = "custom"
)

// TimeWindow - конкретные границы отчетного окна.
// Start - локальная полночь первого дня, End - 23:59:59.999 последнего дня.
// EndExclusive = End + 1мс: вариант для полуоткрытых проверок "< end",
// чтобы запись на последней миллисекунде дня молча не выпадала из выборки.
type TimeWindow struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	EndExclusive time.Time `json:"end_exclusive"`
}

// ContainsInclusive - попадание в закрытый интервал [Start, End].
func (w TimeWindow) ContainsInclusive(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ContainsHalfOpen - попадание в полуоткрытый интервал [Start, EndExclusive).
func (w TimeWindow) ContainsHalfOpen(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.EndExclusive)
}
