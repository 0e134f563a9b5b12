package entities

import "courier-system/pkg/constants"

// OrderLifecycle - все snapshot'ы одного OrderNumber, отсортированные
// по возрастанию эффективного времени. Не хранится в БД, собирается
// заново на каждый запрос.
type OrderLifecycle struct {
	OrderNumber string
	Snapshots   []OrderSnapshot
}

// Last - хронологически последний snapshot. Жизненный цикл по построению
// непустой.
func (l OrderLifecycle) Last() OrderSnapshot {
	return l.Snapshots[len(l.Snapshots)-1]
}

// WasReturned - был ли заказ хоть раз в статусе "return".
func (l OrderLifecycle) WasReturned() bool {
	for _, s := range l.Snapshots {
		if constants.NormalizeStatus(s.Status) == constants.StatusReturn {
			return true
		}
	}
	return false
}
