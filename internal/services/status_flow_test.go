package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier-system/internal/entities"
	"courier-system/pkg/constants"
)

func TestCountStatusFlows(t *testing.T) {
	d1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	d2 := d1.Add(time.Hour)
	d3 := d1.Add(2 * time.Hour)

	t.Run("последовательность дает переходы по соседним парам", func(t *testing.T) {
		groups := []entities.OrderLifecycle{
			lifecycle("A", step(constants.StatusAssigned, d1), step(constants.StatusDelivered, d2), step(constants.StatusReturn, d3)),
		}
		flows := CountStatusFlows(groups, 1)

		require.Len(t, flows, 2)
		assert.Equal(t, constants.StatusAssigned, flows[0].From)
		assert.Equal(t, constants.StatusDelivered, flows[0].To)
		assert.Equal(t, constants.StatusDelivered, flows[1].From)
		assert.Equal(t, constants.StatusReturn, flows[1].To)
	})

	t.Run("повтор статуса переходом не считается", func(t *testing.T) {
		groups := []entities.OrderLifecycle{
			lifecycle("A",
				step(constants.StatusAssigned, d1),
				step(constants.StatusAssigned, d2), // правка без смены статуса
				step(constants.StatusDelivered, d3),
			),
		}
		flows := CountStatusFlows(groups, 1)

		require.Len(t, flows, 1)
		assert.Equal(t, constants.StatusAssigned, flows[0].From)
		assert.Equal(t, constants.StatusDelivered, flows[0].To)
		assert.Equal(t, int64(1), flows[0].Count)
	})

	t.Run("одинаковые переходы из разных заказов суммируются", func(t *testing.T) {
		groups := []entities.OrderLifecycle{
			lifecycle("A", step(constants.StatusAssigned, d1), step(constants.StatusDelivered, d2)),
			lifecycle("B", step(constants.StatusAssigned, d1), step(constants.StatusDelivered, d2)),
			lifecycle("C", step(constants.StatusAssigned, d1), step(constants.StatusReturn, d2)),
		}
		flows := CountStatusFlows(groups, 3)

		require.Len(t, flows, 2)
		// сортировка по убыванию счетчика
		assert.Equal(t, int64(2), flows[0].Count)
		assert.Equal(t, constants.StatusDelivered, flows[0].To)
		assert.InDelta(t, 66.666, flows[0].Percentage, 0.01)
		assert.Equal(t, int64(1), flows[1].Count)
		assert.InDelta(t, 33.333, flows[1].Percentage, 0.01)
	})

	t.Run("одиночный snapshot переходов не дает", func(t *testing.T) {
		groups := []entities.OrderLifecycle{
			lifecycle("A", step(constants.StatusAssigned, d1)),
		}
		assert.Empty(t, CountStatusFlows(groups, 1))
	})

	t.Run("ноль заказов не роняет расчет процента", func(t *testing.T) {
		groups := []entities.OrderLifecycle{
			lifecycle("A", step(constants.StatusAssigned, d1), step(constants.StatusDelivered, d2)),
		}
		flows := CountStatusFlows(groups, 0)
		require.Len(t, flows, 1)
		assert.Zero(t, flows[0].Percentage)
	})
}

// Сумма счетчиков равна общему числу реальных переходов.
func TestCountStatusFlows_Conservation(t *testing.T) {
	d1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	groups := []entities.OrderLifecycle{
		lifecycle("A",
			step(constants.StatusAssigned, d1),
			step(constants.StatusReturn, d1.Add(time.Hour)),
			step(constants.StatusReturn, d1.Add(2*time.Hour)),
			step(constants.StatusDelivered, d1.Add(3*time.Hour)),
		),
		lifecycle("B",
			step(constants.StatusAssigned, d1),
			step(constants.StatusCanceled, d1.Add(time.Hour)),
		),
	}

	flows := CountStatusFlows(groups, 2)

	var total int64
	for _, f := range flows {
		total += f.Count
	}
	// A: assigned→return, return→delivered (самопереход выпал); B: assigned→canceled
	assert.Equal(t, int64(3), total)
}
