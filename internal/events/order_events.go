package events

import "courier-system/internal/entities"

const (
	OrderChangedEventName = "order.changed"

	// Виды триггеров пересчета отчета.
	TriggerNew          = "new"
	TriggerStatusChange = "status_change"
	TriggerRefresh      = "refresh"

	ChangeInsert = "insert"
	ChangeUpdate = "update"
)

// OrderChange - нормализованное уведомление из потока изменений хранилища.
// Before заполнен только для update.
type OrderChange struct {
	Event  string
	Before *entities.OrderSnapshot
	After  entities.OrderSnapshot
}

// OrderChangedEvent - событие на шине: одна измененная строка заказов.
type OrderChangedEvent struct {
	Change OrderChange
}

// Name - реализуем интерфейс eventbus.Event
func (e OrderChangedEvent) Name() string {
	return OrderChangedEventName
}
