package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier-system/internal/entities"
	"courier-system/pkg/constants"
	"courier-system/pkg/types"
)

func categorySnap(status string, totalFees float64, method string) entities.OrderSnapshot {
	return entities.OrderSnapshot{
		RecordID:      uuid.New(),
		OrderNumber:   uuid.NewString(),
		Status:        status,
		TotalFees:     decimal.NewFromFloat(totalFees),
		PaymentMethod: method,
		CreatedAt:     time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func findCategory(t *testing.T, results []types.CategoryResult, id string) types.CategoryResult {
	t.Helper()
	for _, r := range results {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("категория %q не найдена", id)
	return types.CategoryResult{}
}

func TestAggregateCategories(t *testing.T) {
	snapshots := []entities.OrderSnapshot{
		categorySnap(constants.StatusDelivered, 150, "cash"),
		categorySnap(constants.StatusDelivered, 100, "card"),
		categorySnap(constants.StatusPartial, 200, "cash"),
		categorySnap(constants.StatusAssigned, 50, "cash"),
		categorySnap(constants.StatusReturn, 70, "cash"),
	}
	snapshots[2].PartialPaidAmount = decimal.NewNullDecimal(decimal.NewFromInt(80))

	results := AggregateCategories(snapshots, ReportCategories(constants.ViewHistory))

	t.Run("total покрывает все записи", func(t *testing.T) {
		total := findCategory(t, results, "total")
		assert.Equal(t, int64(5), total.Count)
		assert.Equal(t, "570.00", total.OriginalValue.StringFixed(2))
	})

	t.Run("delivered считает только свои записи", func(t *testing.T) {
		delivered := findCategory(t, results, "delivered")
		assert.Equal(t, int64(2), delivered.Count)
		assert.Equal(t, "250.00", delivered.OriginalValue.StringFixed(2))
		// картой оплаченный заказ не входит в собранные наличные
		assert.Equal(t, "150.00", delivered.CollectedValue.StringFixed(2))
	})

	t.Run("completed - ровно delivered плюс partial", func(t *testing.T) {
		completed := findCategory(t, results, "completed")
		delivered := findCategory(t, results, "delivered")
		partial := findCategory(t, results, "partial")

		assert.Equal(t, delivered.Count+partial.Count, completed.Count)
		assert.True(t, completed.OriginalValue.Equal(delivered.OriginalValue.Add(partial.OriginalValue)))
		assert.True(t, completed.CollectedValue.Equal(delivered.CollectedValue.Add(partial.CollectedValue)))
	})

	t.Run("категории пересекаются: сумма частных больше total", func(t *testing.T) {
		var sum int64
		for _, r := range results {
			if r.ID == "total" {
				continue
			}
			sum += r.Count
		}
		// delivered и partial посчитаны дважды (еще раз внутри completed)
		assert.Equal(t, int64(8), sum)
	})
}

func TestAggregateCategories_CanceledOriginal(t *testing.T) {
	// для отмененных номинал - стоимость доставки, не сумма заказа
	s := categorySnap(constants.StatusCanceled, 300, "cash")
	s.DeliveryFee = decimal.NewNullDecimal(decimal.NewFromInt(25))

	results := AggregateCategories([]entities.OrderSnapshot{s}, ReportCategories(constants.ViewHistory))
	canceled := findCategory(t, results, "canceled")

	assert.Equal(t, int64(1), canceled.Count)
	assert.Equal(t, "25.00", canceled.OriginalValue.StringFixed(2))
	assert.Equal(t, "25.00", canceled.CollectedValue.StringFixed(2))
}

func TestAggregateCategories_AssignedView(t *testing.T) {
	s := categorySnap(constants.StatusDelivered, 150, "card")

	t.Run("в режиме истории собрано по факту", func(t *testing.T) {
		results := AggregateCategories([]entities.OrderSnapshot{s}, ReportCategories(constants.ViewHistory))
		completed := findCategory(t, results, "completed")
		assert.False(t, completed.Estimated)
		assert.Equal(t, "0.00", completed.CollectedValue.StringFixed(2))
	})

	t.Run("в режиме назначений - оценочно, без учета способа оплаты", func(t *testing.T) {
		results := AggregateCategories([]entities.OrderSnapshot{s}, ReportCategories(constants.ViewAssigned))
		completed := findCategory(t, results, "completed")
		assert.True(t, completed.Estimated)
		assert.Equal(t, "150.00", completed.CollectedValue.StringFixed(2))
	})
}

func TestAggregateCategories_EmptyAndIdempotent(t *testing.T) {
	categories := ReportCategories(constants.ViewHistory)

	t.Run("пустой вход дает нули по всем категориям", func(t *testing.T) {
		results := AggregateCategories(nil, categories)
		require.Len(t, results, len(categories))
		for _, r := range results {
			assert.Zero(t, r.Count)
			assert.True(t, r.OriginalValue.IsZero())
			assert.True(t, r.CollectedValue.IsZero())
		}
	})

	t.Run("повторный вызов дает идентичный результат", func(t *testing.T) {
		input := []entities.OrderSnapshot{
			categorySnap(constants.StatusDelivered, 150, "cash"),
			categorySnap(constants.StatusReturn, 70, "card"),
		}
		assert.Equal(t, AggregateCategories(input, categories), AggregateCategories(input, categories))
	})
}
