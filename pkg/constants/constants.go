package constants

// --- РЕЖИМЫ ОТЧЕТА ---
// assigned - экран текущих назначений курьера (оценочные суммы),
// history  - экран истории (фактические суммы).
const (
	ViewAssigned = "assigned"
	ViewHistory  = "history"
)

// --- ИСХОДЫ ВОЗВРАЩЕННЫХ ЗАКАЗОВ ---
const (
	OutcomeRecoveredDelivered = "recovered_delivered"
	OutcomeLostCanceled       = "lost_canceled"
	OutcomePartiallyRecovered = "partially_recovered"
	OutcomeStillReturned      = "still_returned"
)
