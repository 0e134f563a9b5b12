package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderSnapshot - одно наблюдаемое состояние заказа в источнике.
// RecordID уникален для строки; OrderNumber - стабильный человеческий номер
// заказа, который переживает переназначения. Один OrderNumber может
// соответствовать многим RecordID (история жизненного цикла).
type OrderSnapshot struct {
	RecordID     uuid.UUID `json:"record_id"`
	OrderNumber  string    `json:"order_number"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`

	TotalFees         decimal.Decimal     `json:"total_fees"`
	DeliveryFee       decimal.NullDecimal `json:"delivery_fee"`
	PartialPaidAmount decimal.NullDecimal `json:"partial_paid_amount"`

	PaymentMethod  string      `json:"payment_method"`
	PaymentSubType null.String `json:"payment_sub_type"`
	CollectedBy    null.String `json:"collected_by"`

	AssignedCourierID null.Uint64 `json:"assigned_courier_id"`
	// OriginalCourierID - курьер, который первым держал заказ.
	// Переживает переназначение.
	OriginalCourierID null.Uint64 `json:"original_courier_id"`

	CreatedAt  time.Time `json:"created_at"`
	AssignedAt null.Time `json:"assigned_at"`
	UpdatedAt  null.Time `json:"updated_at"`

	Archived   bool      `json:"archived"`
	ArchivedAt null.Time `json:"archived_at"`
}

// EffectiveTime - время, по которому snapshot упорядочивается в истории:
// updatedAt, а при его отсутствии createdAt.
func (s OrderSnapshot) EffectiveTime() time.Time {
	if s.UpdatedAt.Valid {
		return s.UpdatedAt.Time
	}
	return s.CreatedAt
}
