package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryResult - итог по одной категории отчета.
// Категории - это пересекающиеся "взгляды" на один набор заказов,
// а не разбиение: заказ может попасть и в "total", и в "delivered".
type CategoryResult struct {
	ID             string          `json:"id"`
	Label          string          `json:"label"`
	Count          int64           `json:"count"`
	OriginalValue  decimal.Decimal `json:"original_value"`
	CollectedValue decimal.Decimal `json:"collected_value"`
	Estimated      bool            `json:"estimated"`
}

// StatusAt - одна точка истории статусов заказа.
type StatusAt struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// ReturnStats - сводка по заказам, побывавшим в статусе "return".
type ReturnStats struct {
	TotalReturnedOrders   int64 `json:"total_returned_orders"`
	ReturnedThenDelivered int64 `json:"returned_then_delivered"`
	ReturnedThenCanceled  int64 `json:"returned_then_canceled"`
	ReturnedThenPartial   int64 `json:"returned_then_partial"`
	StillReturned         int64 `json:"still_returned"`

	PctDelivered float64 `json:"pct_delivered"`
	PctCanceled  float64 `json:"pct_canceled"`
	PctPartial   float64 `json:"pct_partial"`
	PctStill     float64 `json:"pct_still"`
}

// ReturnedOrderDetail - детальная запись по одному возвращенному заказу.
// Булевы признаки взаимоисключающие: ровно один из них истинен.
type ReturnedOrderDetail struct {
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	TotalFees     decimal.Decimal `json:"total_fees"`
	CurrentStatus string          `json:"current_status"`
	History       []StatusAt      `json:"history"`
	FinalOutcome  string          `json:"final_outcome"`
	WasDelivered  bool            `json:"was_delivered"`
	WasCanceled   bool            `json:"was_canceled"`
	WasPartial    bool            `json:"was_partial"`
	StillReturned bool            `json:"still_returned"`
	LastChangeAt  time.Time       `json:"last_change_at"`
}

// StatusFlow - одна строка гистограммы переходов статусов.
type StatusFlow struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DailyStat - количество и собранная сумма за один календарный день окна.
type DailyStat struct {
	Label   string          `json:"label"`
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// PaymentMethodStat - разбивка по способам оплаты.
type PaymentMethodStat struct {
	Method  string          `json:"method"`
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ReconciliationReport - собранный отчет сверки. После сборки не мутирует:
// новый запрос или триггер порождают новый объект.
type ReconciliationReport struct {
	Generation uint64     `json:"generation"`
	ComputedAt time.Time  `json:"computed_at"`
	Window     TimeWindow `json:"window"`
	View       string     `json:"view"`

	TotalOrders    int64                 `json:"total_orders"`
	TotalSnapshots int64                 `json:"total_snapshots"`
	Categories     []CategoryResult      `json:"categories"`
	Returns        ReturnStats           `json:"returns"`
	ReturnDetails  []ReturnedOrderDetail `json:"return_details"`
	StatusFlows    []StatusFlow          `json:"status_flows"`
	Daily          []DailyStat           `json:"daily"`
	PaymentMethods []PaymentMethodStat   `json:"payment_methods"`

	CashCollected    decimal.Decimal `json:"cash_collected"`
	NonCashCollected decimal.Decimal `json:"non_cash_collected"`
}
