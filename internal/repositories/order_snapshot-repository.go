package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"courier-system/internal/entities"
	apperrors "courier-system/pkg/errors"
)

// OrderSnapshotRepositoryInterface - граница с внешним хранилищем заказов.
// Движок сверки этот контракт потребляет, но не владеет им.
type OrderSnapshotRepositoryInterface interface {
	// FetchByTimeField - выборка snapshot'ов, у которых поле field попадает
	// в диапазон. Источник не умеет OR по трем разным полям времени в одном
	// запросе, поэтому на один отчет делается три независимых выборки,
	// которые потом объединяются по RecordID.
	// inclusiveEnd выбирает форму границы: [from, to] или [from, to).
	FetchByTimeField(ctx context.Context, field string, from, to time.Time, inclusiveEnd bool, courierIDs []uint64, includeArchived bool) ([]entities.OrderSnapshot, error)

	// FetchHistoryByCourier - полная история заказов, где курьер назначен
	// сейчас ИЛИ был первым. Без ограничения по времени: возврат мог
	// случиться до окна, а его "спасение" - после.
	FetchHistoryByCourier(ctx context.Context, courierID uint64) ([]entities.OrderSnapshot, error)
}

type OrderSnapshotRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderSnapshotRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderSnapshotRepositoryInterface {
	return &OrderSnapshotRepository{storage: storage, logger: logger}
}

var snapshotColumns = []string{
	"record_id", "order_number", "customer_name", "status",
	"total_fees", "delivery_fee", "partial_paid_amount",
	"payment_method", "payment_sub_type", "collected_by",
	"assigned_courier_id", "original_courier_id",
	"created_at", "assigned_at", "updated_at",
	"archived", "archived_at",
}

// Белый список полей времени: имя поля попадает в SQL без плейсхолдера.
var allowedTimeFields = map[string]bool{
	"created_at":  true,
	"assigned_at": true,
	"updated_at":  true,
}

func (r *OrderSnapshotRepository) FetchByTimeField(ctx context.Context, field string, from, to time.Time, inclusiveEnd bool, courierIDs []uint64, includeArchived bool) ([]entities.OrderSnapshot, error) {
	if !allowedTimeFields[field] {
		return nil, apperrors.ErrUnknownTimeField
	}

	builder := sq.Select(snapshotColumns...).
		From("order_snapshots").
		Where(sq.GtOrEq{field: from}).
		Where(sq.NotEq{"assigned_courier_id": nil})

	if inclusiveEnd {
		builder = builder.Where(sq.LtOrEq{field: to})
	} else {
		builder = builder.Where(sq.Lt{field: to})
	}
	if len(courierIDs) > 0 {
		builder = builder.Where(sq.Eq{"assigned_courier_id": courierIDs})
	}
	if !includeArchived {
		builder = builder.Where(sq.Eq{"archived": false})
	}

	// Порядок выборки фиксируем, чтобы стабильная сортировка группировщика
	// давала воспроизводимый результат при равных временах.
	builder = builder.OrderBy("created_at ASC", "record_id ASC")

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса по полю %s: %w", field, err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки snapshot'ов по полю %s: %w", field, err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

func (r *OrderSnapshotRepository) FetchHistoryByCourier(ctx context.Context, courierID uint64) ([]entities.OrderSnapshot, error) {
	builder := sq.Select(snapshotColumns...).
		From("order_snapshots").
		Where(sq.Or{
			sq.Eq{"assigned_courier_id": courierID},
			sq.Eq{"original_courier_id": courierID},
		}).
		OrderBy("created_at ASC", "record_id ASC")

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса истории курьера: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки истории курьера %d: %w", courierID, err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

func scanSnapshots(rows pgx.Rows) ([]entities.OrderSnapshot, error) {
	snapshots := make([]entities.OrderSnapshot, 0)
	for rows.Next() {
		var s entities.OrderSnapshot
		err := rows.Scan(
			&s.RecordID, &s.OrderNumber, &s.CustomerName, &s.Status,
			&s.TotalFees, &s.DeliveryFee, &s.PartialPaidAmount,
			&s.PaymentMethod, &s.PaymentSubType, &s.CollectedBy,
			&s.AssignedCourierID, &s.OriginalCourierID,
			&s.CreatedAt, &s.AssignedAt, &s.UpdatedAt,
			&s.Archived, &s.ArchivedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования snapshot'а: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения результата выборки: %w", err)
	}
	return snapshots, nil
}
