package services

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier-system/internal/entities"
	"courier-system/pkg/constants"
)

// makeSnapshot - базовый snapshot для тестов политики.
func makeSnapshot(status string, totalFees float64, paymentMethod string) entities.OrderSnapshot {
	return entities.OrderSnapshot{
		RecordID:      uuid.New(),
		OrderNumber:   "ORD-1",
		Status:        status,
		TotalFees:     decimal.NewFromFloat(totalFees),
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestIsCashCollected(t *testing.T) {
	t.Run("курьер собрал на руки", func(t *testing.T) {
		s := makeSnapshot(constants.StatusDelivered, 100, "card")
		s.CollectedBy = null.StringFrom(constants.CollectedByCourier)
		s.PaymentSubType = null.StringFrom(constants.PaymentSubTypeOnHand)
		assert.True(t, IsCashCollected(s))
	})

	t.Run("способ оплаты содержит cash в любом регистре", func(t *testing.T) {
		assert.True(t, IsCashCollected(makeSnapshot(constants.StatusDelivered, 100, "Cash")))
		assert.True(t, IsCashCollected(makeSnapshot(constants.StatusDelivered, 100, "CASH ON DELIVERY")))
	})

	t.Run("cod", func(t *testing.T) {
		assert.True(t, IsCashCollected(makeSnapshot(constants.StatusDelivered, 100, "cod")))
		assert.True(t, IsCashCollected(makeSnapshot(constants.StatusDelivered, 100, "COD")))
	})

	t.Run("неизвестный способ оплаты - безналичный", func(t *testing.T) {
		assert.False(t, IsCashCollected(makeSnapshot(constants.StatusDelivered, 100, "card")))
		assert.False(t, IsCashCollected(makeSnapshot(constants.StatusDelivered, 100, "")))
	})
}

func TestCollectedAmount(t *testing.T) {
	t.Run("доставлен наличными - вся сумма", func(t *testing.T) {
		s := makeSnapshot(constants.StatusDelivered, 150, "cash")
		assert.Equal(t, "150.00", CollectedAmount(s).StringFixed(2))
	})

	t.Run("доставлен картой - ноль", func(t *testing.T) {
		s := makeSnapshot(constants.StatusDelivered, 150, "card")
		assert.Equal(t, "0.00", CollectedAmount(s).StringFixed(2))
	})

	t.Run("частичная оплата - внесенная сумма", func(t *testing.T) {
		s := makeSnapshot(constants.StatusPartial, 200, "cash")
		s.PartialPaidAmount = decimal.NewNullDecimal(decimal.NewFromInt(80))
		assert.Equal(t, "80.00", CollectedAmount(s).StringFixed(2))
	})

	t.Run("частичная оплата без суммы - ноль, а не ошибка", func(t *testing.T) {
		s := makeSnapshot(constants.StatusPartial, 200, "cash")
		assert.Equal(t, "0.00", CollectedAmount(s).StringFixed(2))
	})

	t.Run("отменен - только стоимость доставки", func(t *testing.T) {
		s := makeSnapshot(constants.StatusCanceled, 300, "cash")
		s.DeliveryFee = decimal.NewNullDecimal(decimal.NewFromInt(25))
		assert.Equal(t, "25.00", CollectedAmount(s).StringFixed(2))
	})

	t.Run("из рук в руки наличными - вся сумма", func(t *testing.T) {
		s := makeSnapshot(constants.StatusHandToHand, 90, "cash")
		assert.Equal(t, "90.00", CollectedAmount(s).StringFixed(2))
	})

	t.Run("возврат - всегда ноль", func(t *testing.T) {
		s := makeSnapshot(constants.StatusReturn, 500, "cash")
		assert.Equal(t, "0.00", CollectedAmount(s).StringFixed(2))
	})

	t.Run("частичный прием - внесенная сумма", func(t *testing.T) {
		s := makeSnapshot(constants.StatusReceivingPart, 120, "card")
		s.PartialPaidAmount = decimal.NewNullDecimal(decimal.NewFromInt(40))
		assert.Equal(t, "40.00", CollectedAmount(s).StringFixed(2))
	})

	t.Run("назначен и неизвестный статус - ноль", func(t *testing.T) {
		assert.Equal(t, "0.00", CollectedAmount(makeSnapshot(constants.StatusAssigned, 100, "cash")).StringFixed(2))
		assert.Equal(t, "0.00", CollectedAmount(makeSnapshot("что-то-новое", 100, "cash")).StringFixed(2))
	})
}

// Свойство: для финальных статусов собранная сумма не превышает номинал,
// равенство - только при наличной оплате.
func TestCollectedAmount_NeverExceedsTotalFees(t *testing.T) {
	for _, status := range []string{constants.StatusDelivered, constants.StatusHandToHand} {
		for _, method := range []string{"cash", "cod", "card", "online", ""} {
			s := makeSnapshot(status, 150, method)
			collected := CollectedAmount(s)
			require.True(t, collected.LessThanOrEqual(s.TotalFees),
				"статус %s, способ %q", status, method)
			assert.Equal(t, IsCashCollected(s), collected.Equal(s.TotalFees),
				"равенство только при наличных: статус %s, способ %q", status, method)
		}
	}
}

func TestEstimatedCollected(t *testing.T) {
	t.Run("оптимистичнее фактической: не смотрит на способ оплаты", func(t *testing.T) {
		s := makeSnapshot(constants.StatusDelivered, 150, "card")
		assert.Equal(t, "150.00", EstimatedCollected(s).StringFixed(2))
		assert.Equal(t, "0.00", CollectedAmount(s).StringFixed(2))
	})

	t.Run("partial - вся сумма, не частичная", func(t *testing.T) {
		s := makeSnapshot(constants.StatusPartial, 200, "card")
		s.PartialPaidAmount = decimal.NewNullDecimal(decimal.NewFromInt(80))
		assert.Equal(t, "200.00", EstimatedCollected(s).StringFixed(2))
	})

	t.Run("остальные статусы - ноль", func(t *testing.T) {
		assert.Equal(t, "0.00", EstimatedCollected(makeSnapshot(constants.StatusAssigned, 100, "cash")).StringFixed(2))
		assert.Equal(t, "0.00", EstimatedCollected(makeSnapshot(constants.StatusReturn, 100, "cash")).StringFixed(2))
	})
}

// Каждый известный статус должен иметь свою ветку политики,
// а неизвестные значения - безопасно деградировать.
func TestNormalizeStatus_Vocabulary(t *testing.T) {
	for _, status := range constants.KnownStatuses {
		assert.Equal(t, status, constants.NormalizeStatus(status))
	}
	assert.Equal(t, constants.StatusUnknown, constants.NormalizeStatus("surprise"))
	assert.Equal(t, constants.StatusUnknown, constants.NormalizeStatus(""))
}
