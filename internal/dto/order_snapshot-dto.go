package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"courier-system/internal/entities"
	apperrors "courier-system/pkg/errors"
)

// OrderSnapshotDTO - строка заказа в том виде, как ее отдает поток
// изменений хранилища.
type OrderSnapshotDTO struct {
	RecordID          string           `json:"record_id" validate:"required,uuid4"`
	OrderNumber       string           `json:"order_number" validate:"required"`
	CustomerName      string           `json:"customer_name"`
	Status            string           `json:"status" validate:"required"`
	TotalFees         decimal.Decimal  `json:"total_fees"`
	DeliveryFee       *decimal.Decimal `json:"delivery_fee,omitempty"`
	PartialPaidAmount *decimal.Decimal `json:"partial_paid_amount,omitempty"`
	PaymentMethod     string           `json:"payment_method"`
	PaymentSubType    *string          `json:"payment_sub_type,omitempty"`
	CollectedBy       *string          `json:"collected_by,omitempty"`
	AssignedCourierID *uint64          `json:"assigned_courier_id,omitempty"`
	OriginalCourierID *uint64          `json:"original_courier_id,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	AssignedAt        *time.Time       `json:"assigned_at,omitempty"`
	UpdatedAt         *time.Time       `json:"updated_at,omitempty"`
	Archived          bool             `json:"archived"`
	ArchivedAt        *time.Time       `json:"archived_at,omitempty"`
}

// ToEntity переводит DTO во внутреннюю сущность.
func (d OrderSnapshotDTO) ToEntity() (entities.OrderSnapshot, error) {
	recordID, err := uuid.Parse(d.RecordID)
	if err != nil {
		return entities.OrderSnapshot{}, apperrors.NewInvalidInputError("некорректный record_id: %q", d.RecordID)
	}

	s := entities.OrderSnapshot{
		RecordID:      recordID,
		OrderNumber:   d.OrderNumber,
		CustomerName:  d.CustomerName,
		Status:        d.Status,
		TotalFees:     d.TotalFees,
		PaymentMethod: d.PaymentMethod,
		CreatedAt:     d.CreatedAt,
		Archived:      d.Archived,
	}

	if d.DeliveryFee != nil {
		s.DeliveryFee = decimal.NewNullDecimal(*d.DeliveryFee)
	}
	if d.PartialPaidAmount != nil {
		s.PartialPaidAmount = decimal.NewNullDecimal(*d.PartialPaidAmount)
	}
	s.PaymentSubType = null.StringFromPtr(d.PaymentSubType)
	s.CollectedBy = null.StringFromPtr(d.CollectedBy)
	s.AssignedCourierID = null.Uint64FromPtr(d.AssignedCourierID)
	s.OriginalCourierID = null.Uint64FromPtr(d.OriginalCourierID)
	s.AssignedAt = null.TimeFromPtr(d.AssignedAt)
	s.UpdatedAt = null.TimeFromPtr(d.UpdatedAt)
	s.ArchivedAt = null.TimeFromPtr(d.ArchivedAt)

	return s, nil
}

// OrderChangeDTO - одно событие потока изменений.
type OrderChangeDTO struct {
	Event  string            `json:"event" validate:"required,oneof=insert update"`
	Before *OrderSnapshotDTO `json:"before,omitempty"`
	After  OrderSnapshotDTO  `json:"after" validate:"required"`
}

// OrderChangesPayloadDTO - тело вебхука от хранилища.
type OrderChangesPayloadDTO struct {
	Changes []OrderChangeDTO `json:"changes" validate:"required,min=1,dive"`
}
