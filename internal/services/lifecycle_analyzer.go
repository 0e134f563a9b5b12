package services

import (
	"sort"

	"courier-system/internal/entities"
	"courier-system/pkg/constants"
	"courier-system/pkg/types"
)

// LifecycleAnalysis - результат анализа жизненных циклов для одного окна.
type LifecycleAnalysis struct {
	Stats   types.ReturnStats
	Details []types.ReturnedOrderDetail
	// Included - жизненные циклы, прошедшие политику включения в окно.
	Included []entities.OrderLifecycle
	// Snapshots - ВСЕ snapshot'ы включенных циклов, а не только оконные.
	// Если цикл попал в отчет, он попадает целиком (политика
	// "все или ничего"), и дальнейшие категории считаются по этому набору.
	Snapshots []entities.OrderSnapshot
}

// AnalyzeLifecycles применяет политику включения и классифицирует исходы
// возвращенных заказов.
//
// Цикл включается в отчет, если:
//   - эффективное время хотя бы одного snapshot'а попадает в окно, ИЛИ
//   - заказ когда-либо был в "return" и сам переход в return случился в окне.
//
// Правило несимметричное: возврат, "спасенный" за пределами наивного окна,
// не теряется из статистики, а давно возвращенный заказ без активности
// в окне - не включается.
func AnalyzeLifecycles(groups []entities.OrderLifecycle, window types.TimeWindow) LifecycleAnalysis {
	analysis := LifecycleAnalysis{
		Details:   make([]types.ReturnedOrderDetail, 0),
		Included:  make([]entities.OrderLifecycle, 0),
		Snapshots: make([]entities.OrderSnapshot, 0),
	}

	for _, group := range groups {
		anyInWindow := false
		returnInWindow := false
		for _, s := range group.Snapshots {
			ts := s.EffectiveTime()
			if window.ContainsInclusive(ts) {
				anyInWindow = true
				if constants.NormalizeStatus(s.Status) == constants.StatusReturn {
					returnInWindow = true
				}
			}
		}

		wasReturned := group.WasReturned()
		include := anyInWindow || (wasReturned && (anyInWindow || returnInWindow))
		if !include {
			continue
		}

		analysis.Included = append(analysis.Included, group)
		analysis.Snapshots = append(analysis.Snapshots, group.Snapshots...)

		if wasReturned {
			analysis.Stats.TotalReturnedOrders++
			analysis.Details = append(analysis.Details, classifyReturnedOrder(group, &analysis.Stats))
		}
	}

	finalizeReturnStats(&analysis.Stats)

	// Самые свежие по последнему изменению - первыми.
	sort.SliceStable(analysis.Details, func(i, j int) bool {
		return analysis.Details[i].LastChangeAt.After(analysis.Details[j].LastChangeAt)
	})

	return analysis
}

// classifyReturnedOrder определяет итоговый исход по последнему статусу.
// Ровно один из булевых признаков истинен; все незнакомые статусы
// консервативно считаются "все еще возвращен".
func classifyReturnedOrder(group entities.OrderLifecycle, stats *types.ReturnStats) types.ReturnedOrderDetail {
	last := group.Last()

	detail := types.ReturnedOrderDetail{
		OrderNumber:   group.OrderNumber,
		CustomerName:  last.CustomerName,
		TotalFees:     last.TotalFees,
		CurrentStatus: last.Status,
		LastChangeAt:  last.EffectiveTime(),
		History:       make([]types.StatusAt, 0, len(group.Snapshots)),
	}
	for _, s := range group.Snapshots {
		detail.History = append(detail.History, types.StatusAt{Status: s.Status, At: s.EffectiveTime()})
	}

	switch constants.NormalizeStatus(last.Status) {
	case constants.StatusDelivered:
		detail.FinalOutcome = constants.OutcomeRecoveredDelivered
		detail.WasDelivered = true
		stats.ReturnedThenDelivered++
	case constants.StatusCanceled:
		detail.FinalOutcome = constants.OutcomeLostCanceled
		detail.WasCanceled = true
		stats.ReturnedThenCanceled++
	case constants.StatusPartial:
		detail.FinalOutcome = constants.OutcomePartiallyRecovered
		detail.WasPartial = true
		stats.ReturnedThenPartial++
	default:
		detail.FinalOutcome = constants.OutcomeStillReturned
		detail.StillReturned = true
		stats.StillReturned++
	}
	return detail
}

func finalizeReturnStats(stats *types.ReturnStats) {
	total := stats.TotalReturnedOrders
	if total == 0 {
		return
	}
	stats.PctDelivered = float64(stats.ReturnedThenDelivered) / float64(total) * 100
	stats.PctCanceled = float64(stats.ReturnedThenCanceled) / float64(total) * 100
	stats.PctPartial = float64(stats.ReturnedThenPartial) / float64(total) * 100
	stats.PctStill = float64(stats.StillReturned) / float64(total) * 100
}
