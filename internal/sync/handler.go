// Файл: internal/sync/handler.go
package sync

import (
	"context"

	"go.uber.org/zap"

	"courier-system/internal/dto"
	"courier-system/internal/entities"
	"courier-system/internal/events"
	apperrors "courier-system/pkg/errors"
	"courier-system/pkg/eventbus"
)

// HandlerInterface - прием пачки изменений из потока хранилища.
type HandlerInterface interface {
	ProcessOrderChanges(ctx context.Context, changes []dto.OrderChangeDTO) error
}

// ChangeHandler нормализует сырые события вебхука и публикует их на шину.
// Сам движок сверки на поток изменений не завязан - он лишь потребитель
// snapshot'ов; связь идет через события и слушателей.
type ChangeHandler struct {
	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewChangeHandler(bus *eventbus.Bus, logger *zap.Logger) HandlerInterface {
	return &ChangeHandler{bus: bus, logger: logger}
}

func (h *ChangeHandler) ProcessOrderChanges(ctx context.Context, changes []dto.OrderChangeDTO) error {
	for _, change := range changes {
		if change.Event != events.ChangeInsert && change.Event != events.ChangeUpdate {
			return apperrors.NewInvalidInputError("неизвестный тип события потока изменений: %q", change.Event)
		}

		after, err := change.After.ToEntity()
		if err != nil {
			return err
		}

		var before *entities.OrderSnapshot
		if change.Before != nil {
			b, err := change.Before.ToEntity()
			if err != nil {
				return err
			}
			before = &b
		}

		h.bus.Publish(ctx, events.OrderChangedEvent{
			Change: events.OrderChange{
				Event:  change.Event,
				Before: before,
				After:  after,
			},
		})
	}

	h.logger.Debug("Пачка изменений опубликована на шину", zap.Int("count", len(changes)))
	return nil
}
