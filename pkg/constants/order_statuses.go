package constants

// --- СТАТУСЫ ЗАКАЗОВ ДОСТАВКИ (Совпадает с кодами в БД) ---
const (
	StatusAssigned      = "assigned"
	StatusDelivered     = "delivered"
	StatusPartial       = "partial"
	StatusCanceled      = "canceled"
	StatusHandToHand    = "hand_to_hand"
	StatusReturn        = "return"
	StatusReceivingPart = "receiving_part"

	// StatusUnknown - запасной вариант для нераспознанных кодов из источника.
	// Источник отдает статус как открытую строку, поэтому любое новое значение
	// не должно ломать подсчеты.
	StatusUnknown = "unknown"
)

// KnownStatuses - полный словарь статусов, которые умеет различать движок.
var KnownStatuses = []string{
	StatusAssigned,
	StatusDelivered,
	StatusPartial,
	StatusCanceled,
	StatusHandToHand,
	StatusReturn,
	StatusReceivingPart,
}

// NormalizeStatus приводит сырой статус из источника к известному коду.
// Неизвестные значения деградируют в StatusUnknown, а не в ошибку.
func NormalizeStatus(raw string) string {
	for _, s := range KnownStatuses {
		if s == raw {
			return s
		}
	}
	return StatusUnknown
}

// Финальные статусы (заказ больше не двигается по жизненному циклу)
var FinalStatuses = []string{
	StatusDelivered,
	StatusCanceled,
	StatusPartial,
}

// Функция-проверка
func IsFinalStatus(code string) bool {
	for _, s := range FinalStatuses {
		if s == code {
			return true
		}
	}
	return false
}

// --- ПРИЗНАКИ НАЛИЧНОЙ ОПЛАТЫ ---
const (
	CollectedByCourier   = "courier"
	PaymentSubTypeOnHand = "on_hand"
	PaymentMethodCOD     = "cod"
	PaymentMethodCash    = "cash"
)
