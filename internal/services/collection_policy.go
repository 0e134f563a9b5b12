package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"courier-system/internal/entities"
	"courier-system/pkg/constants"
)

// IsCashCollected определяет, получены ли деньги по заказу живыми наличными:
// либо курьер собирал "на руки", либо способ оплаты - наличные/COD.
// Неизвестный способ оплаты считается безналичным.
func IsCashCollected(s entities.OrderSnapshot) bool {
	if s.CollectedBy.Valid && s.CollectedBy.String == constants.CollectedByCourier &&
		s.PaymentSubType.Valid && s.PaymentSubType.String == constants.PaymentSubTypeOnHand {
		return true
	}

	method := strings.ToLower(strings.TrimSpace(s.PaymentMethod))
	if strings.Contains(method, constants.PaymentMethodCash) {
		return true
	}
	return method == constants.PaymentMethodCOD
}

// CollectedAmount - фактически собранная сумма по одному snapshot'у.
// Это ядро учетной политики, правила зависят от статуса:
//
//	delivered/hand_to_hand - вся сумма, но только если оплата наличными;
//	partial/receiving_part - частично внесенная сумма;
//	canceled               - только стоимость доставки;
//	return                 - ничего;
//	assigned и неизвестные - ничего.
//
// Отсутствующее числовое поле трактуется как ноль, а не как ошибка.
func CollectedAmount(s entities.OrderSnapshot) decimal.Decimal {
	switch constants.NormalizeStatus(s.Status) {
	case constants.StatusDelivered, constants.StatusHandToHand:
		if IsCashCollected(s) {
			return s.TotalFees
		}
		return decimal.Zero
	case constants.StatusPartial, constants.StatusReceivingPart:
		return nullOrZero(s.PartialPaidAmount)
	case constants.StatusCanceled:
		return nullOrZero(s.DeliveryFee)
	case constants.StatusReturn:
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// EstimatedCollected - оценочная сумма для еще не закрытых экранов
// ("назначенные", "выполняется"). Намеренно оптимистичнее CollectedAmount:
// не смотрит на способ оплаты. Эти две функции обслуживают разные строки
// отчета ("факт" и "оценка") и не должны смешиваться.
func EstimatedCollected(s entities.OrderSnapshot) decimal.Decimal {
	switch constants.NormalizeStatus(s.Status) {
	case constants.StatusDelivered, constants.StatusPartial:
		return s.TotalFees
	default:
		return decimal.Zero
	}
}

func nullOrZero(d decimal.NullDecimal) decimal.Decimal {
	if d.Valid {
		return d.Decimal
	}
	return decimal.Zero
}
