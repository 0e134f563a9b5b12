package services

import (
	"github.com/shopspring/decimal"

	"courier-system/internal/entities"
	"courier-system/pkg/constants"
	"courier-system/pkg/types"
)

// Category - одна категория отчета: предикат по статусу плюс правило сумм.
// Категории фиксированные, но таблица данных позволяет добавлять новые,
// не трогая код агрегации.
type Category struct {
	ID    string
	Label string
	// Estimate - считать собранную сумму оценочно (EstimatedCollected),
	// а не фактически. Используется на экране текущих назначений.
	Estimate bool
	Matches  func(s entities.OrderSnapshot) bool
	// Original - какая сумма считается "номиналом" категории
	// (totalFees, для отмененных - deliveryFee).
	Original func(s entities.OrderSnapshot) decimal.Decimal
}

func statusIs(codes ...string) func(s entities.OrderSnapshot) bool {
	return func(s entities.OrderSnapshot) bool {
		norm := constants.NormalizeStatus(s.Status)
		for _, c := range codes {
			if norm == c {
				return true
			}
		}
		return false
	}
}

func totalFees(s entities.OrderSnapshot) decimal.Decimal { return s.TotalFees }

func deliveryFee(s entities.OrderSnapshot) decimal.Decimal { return nullOrZero(s.DeliveryFee) }

// ReportCategories - фиксированная таблица категорий для режима view.
// В режиме "assigned" незакрытые категории помечаются как оценочные.
// Порядок таблицы - это порядок строк в отчете.
func ReportCategories(view string) []Category {
	estimate := view == constants.ViewAssigned

	return []Category{
		{
			ID:      "total",
			Label:   "Все заказы",
			Matches: func(entities.OrderSnapshot) bool { return true },
			Original: totalFees,
		},
		{
			ID:       "delivered",
			Label:    "Доставлено",
			Matches:  statusIs(constants.StatusDelivered),
			Original: totalFees,
		},
		{
			ID:       "partial",
			Label:    "Частичная оплата",
			Matches:  statusIs(constants.StatusPartial),
			Original: totalFees,
		},
		{
			ID:       "canceled",
			Label:    "Отменено",
			Matches:  statusIs(constants.StatusCanceled),
			Original: deliveryFee,
		},
		{
			ID:       "assigned",
			Label:    "Назначено",
			Estimate: estimate,
			Matches:  statusIs(constants.StatusAssigned),
			Original: totalFees,
		},
		{
			ID:       "hand_to_hand",
			Label:    "Из рук в руки",
			Matches:  statusIs(constants.StatusHandToHand),
			Original: totalFees,
		},
		{
			ID:       "return",
			Label:    "Возврат",
			Matches:  statusIs(constants.StatusReturn),
			Original: totalFees,
		},
		{
			ID:       "receiving_part",
			Label:    "Частичный прием",
			Matches:  statusIs(constants.StatusReceivingPart),
			Original: totalFees,
		},
		{
			// completed = delivered ∪ partial, ровно их сумма
			ID:       "completed",
			Label:    "Завершено",
			Estimate: estimate,
			Matches:  statusIs(constants.StatusDelivered, constants.StatusPartial),
			Original: totalFees,
		},
	}
}

// AggregateCategories раскладывает набор snapshot'ов по категориям.
// Категории независимы и могут пересекаться - это осознанное поведение,
// а не двойной счет. Функция чистая: повторный вызов на том же наборе
// дает идентичный результат.
func AggregateCategories(snapshots []entities.OrderSnapshot, categories []Category) []types.CategoryResult {
	results := make([]types.CategoryResult, 0, len(categories))

	for _, cat := range categories {
		res := types.CategoryResult{
			ID:             cat.ID,
			Label:          cat.Label,
			Estimated:      cat.Estimate,
			OriginalValue:  decimal.Zero,
			CollectedValue: decimal.Zero,
		}
		for _, s := range snapshots {
			if !cat.Matches(s) {
				continue
			}
			res.Count++
			res.OriginalValue = res.OriginalValue.Add(cat.Original(s))
			if cat.Estimate {
				res.CollectedValue = res.CollectedValue.Add(EstimatedCollected(s))
			} else {
				res.CollectedValue = res.CollectedValue.Add(CollectedAmount(s))
			}
		}
		results = append(results, res)
	}
	return results
}
