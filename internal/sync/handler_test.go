package sync

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"courier-system/internal/dto"
	"courier-system/internal/events"
	apperrors "courier-system/pkg/errors"
	"courier-system/pkg/eventbus"
)

func snapshotDTO(order, status string) dto.OrderSnapshotDTO {
	courier := uint64(7)
	return dto.OrderSnapshotDTO{
		RecordID:          uuid.NewString(),
		OrderNumber:       order,
		Status:            status,
		TotalFees:         decimal.NewFromInt(150),
		PaymentMethod:     "cash",
		AssignedCourierID: &courier,
		CreatedAt:         time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestProcessOrderChanges_PublishesEvents(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	received := make(chan events.OrderChangedEvent, 4)
	unsubscribe := bus.Subscribe(events.OrderChangedEventName, func(_ context.Context, e eventbus.Event) error {
		if oc, ok := e.(events.OrderChangedEvent); ok {
			received <- oc
		}
		return nil
	})
	defer unsubscribe()

	handler := NewChangeHandler(bus, zap.NewNop())

	before := snapshotDTO("A", "assigned")
	after := before
	after.Status = "delivered"

	err := handler.ProcessOrderChanges(context.Background(), []dto.OrderChangeDTO{
		{Event: events.ChangeInsert, After: snapshotDTO("B", "assigned")},
		{Event: events.ChangeUpdate, Before: &before, After: after},
	})
	require.NoError(t, err)

	got := make(map[string]events.OrderChangedEvent)
	for i := 0; i < 2; i++ {
		select {
		case e := <-received:
			got[e.Change.After.OrderNumber] = e
		case <-time.After(2 * time.Second):
			t.Fatal("событие не дошло до слушателя")
		}
	}

	insert := got["B"]
	assert.Equal(t, events.ChangeInsert, insert.Change.Event)
	assert.Nil(t, insert.Change.Before)

	update := got["A"]
	assert.Equal(t, events.ChangeUpdate, update.Change.Event)
	require.NotNil(t, update.Change.Before)
	assert.Equal(t, "assigned", update.Change.Before.Status)
	assert.Equal(t, "delivered", update.Change.After.Status)
	assert.Equal(t, uint64(7), update.Change.After.AssignedCourierID.Uint64)
}

func TestProcessOrderChanges_Invalid(t *testing.T) {
	handler := NewChangeHandler(eventbus.New(zap.NewNop()), zap.NewNop())

	t.Run("неизвестный тип события", func(t *testing.T) {
		err := handler.ProcessOrderChanges(context.Background(), []dto.OrderChangeDTO{
			{Event: "delete", After: snapshotDTO("A", "assigned")},
		})
		require.Error(t, err)
		var invalid *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("битый record_id", func(t *testing.T) {
		broken := snapshotDTO("A", "assigned")
		broken.RecordID = "не uuid"
		err := handler.ProcessOrderChanges(context.Background(), []dto.OrderChangeDTO{
			{Event: events.ChangeInsert, After: broken},
		})
		require.Error(t, err)
		var invalid *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestOrderSnapshotDTO_ToEntity(t *testing.T) {
	fee := decimal.NewFromInt(25)
	paid := decimal.NewFromInt(80)
	sub := "on_hand"
	updated := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	d := snapshotDTO("A", "partial")
	d.DeliveryFee = &fee
	d.PartialPaidAmount = &paid
	d.PaymentSubType = &sub
	d.UpdatedAt = &updated

	s, err := d.ToEntity()
	require.NoError(t, err)

	assert.Equal(t, "A", s.OrderNumber)
	assert.True(t, s.DeliveryFee.Valid)
	assert.Equal(t, "25.00", s.DeliveryFee.Decimal.StringFixed(2))
	assert.True(t, s.PartialPaidAmount.Valid)
	assert.Equal(t, "on_hand", s.PaymentSubType.String)
	assert.True(t, s.UpdatedAt.Valid)
	// updatedAt задан - он и есть эффективное время
	assert.True(t, s.EffectiveTime().Equal(updated))

	t.Run("опциональные поля по умолчанию пустые", func(t *testing.T) {
		s, err := snapshotDTO("B", "assigned").ToEntity()
		require.NoError(t, err)
		assert.False(t, s.DeliveryFee.Valid)
		assert.False(t, s.UpdatedAt.Valid)
		assert.True(t, s.EffectiveTime().Equal(s.CreatedAt))
	})
}
