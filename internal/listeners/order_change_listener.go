package listeners

import (
	"context"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"courier-system/internal/events"
	"courier-system/internal/services"
	"courier-system/pkg/constants"
	"courier-system/pkg/eventbus"
)

// OrderChangeListener превращает события потока изменений в триггеры
// пересчета отчетов. Классификация нужна в основном для логов и будущих
// звуковых/визуальных уведомлений: insert - это "новый заказ",
// update со сменой статуса - "смена статуса", остальные правки -
// обычный refresh, они не должны выглядеть как движение жизненного цикла.
type OrderChangeListener struct {
	service *services.ReconciliationService
	logger  *zap.Logger
}

func NewOrderChangeListener(service *services.ReconciliationService, logger *zap.Logger) *OrderChangeListener {
	return &OrderChangeListener{service: service, logger: logger}
}

// Register подписывает слушателя на шину и возвращает функцию отписки.
func (l *OrderChangeListener) Register(bus *eventbus.Bus) func() {
	return bus.Subscribe(events.OrderChangedEventName, l.Handle)
}

func (l *OrderChangeListener) Handle(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderChangedEvent)
	if !ok {
		return nil
	}

	kind := ClassifyChange(e.Change)
	couriers := AffectedCouriers(e.Change)

	l.logger.Debug("Триггер пересчета отчета",
		zap.String("kind", kind),
		zap.String("order", e.Change.After.OrderNumber),
		zap.Uint64s("couriers", couriers),
	)

	l.service.RefreshAffected(couriers)
	return nil
}

// ClassifyChange относит изменение к одному из видов триггеров.
// Правка без реальной смены статуса - всего лишь refresh.
func ClassifyChange(c events.OrderChange) string {
	if c.Event == events.ChangeInsert {
		return events.TriggerNew
	}
	if c.Before != nil &&
		constants.NormalizeStatus(c.Before.Status) != constants.NormalizeStatus(c.After.Status) {
		return events.TriggerStatusChange
	}
	return events.TriggerRefresh
}

// AffectedCouriers собирает курьеров, которых касается изменение:
// назначенного и исходного, из старой и новой версии строки.
// При переназначении заказ затрагивает отчеты обоих курьеров.
func AffectedCouriers(c events.OrderChange) []uint64 {
	seen := make(map[uint64]bool)
	ids := make([]uint64, 0, 4)

	add := func(id null.Uint64) {
		if id.Valid && !seen[id.Uint64] {
			seen[id.Uint64] = true
			ids = append(ids, id.Uint64)
		}
	}

	add(c.After.AssignedCourierID)
	add(c.After.OriginalCourierID)
	if c.Before != nil {
		add(c.Before.AssignedCourierID)
		add(c.Before.OriginalCourierID)
	}
	return ids
}
