package services

import (
	"sort"

	"courier-system/internal/entities"
	"courier-system/pkg/types"
)

type flowKey struct {
	from, to string
}

// CountStatusFlows строит гистограмму переходов статусов по всем жизненным
// циклам. Считаются только соседние пары с разными статусами: правка поля
// без смены статуса переходом не является. Процент - от числа заказов
// в рамках отчета. Результат отсортирован по убыванию счетчика;
// при равенстве порядок первого появления сохраняется.
func CountStatusFlows(groups []entities.OrderLifecycle, totalOrders int64) []types.StatusFlow {
	counts := make(map[flowKey]int64)
	order := make([]flowKey, 0)

	for _, group := range groups {
		if len(group.Snapshots) < 2 {
			continue
		}
		for i := 1; i < len(group.Snapshots); i++ {
			from := group.Snapshots[i-1].Status
			to := group.Snapshots[i].Status
			if from == to {
				continue
			}
			key := flowKey{from: from, to: to}
			if _, seen := counts[key]; !seen {
				order = append(order, key)
			}
			counts[key]++
		}
	}

	flows := make([]types.StatusFlow, 0, len(order))
	for _, key := range order {
		flow := types.StatusFlow{From: key.from, To: key.to, Count: counts[key]}
		if totalOrders > 0 {
			flow.Percentage = float64(flow.Count) / float64(totalOrders) * 100
		}
		flows = append(flows, flow)
	}

	sort.SliceStable(flows, func(i, j int) bool {
		return flows[i].Count > flows[j].Count
	})
	return flows
}
