package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TransferService/pkg/money"
	"github.com/m04kA/SMC-TransferService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"client_id",
	"service_kind",
	"hour_package",
	"vehicle_class",
	"armored",
	"driver_class",
	"outsourcing",
	"supplier_id",
	"status",
	"pickup_address",
	"dropoff_address",
	"passenger_name",
	"notes",
	"price_source",
	"rate_row_id",
	"subtotal",
	"tax_percent",
	"tax_amount",
	"total_price",
	"supplier_cost",
	"cancel_fee_percent",
	"cancel_fee_amount",
	"cancel_window",
	"cancel_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// mutableStatuses статусы, из которых заказ ещё можно перевести дальше
var mutableStatuses = []domain.OrderStatus{domain.OrderReserved, domain.OrderInProgress}

// Repository репозиторий заказов в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заказ.
// Если в контексте передана активная транзакция, использует её:
// заказ и его запись в агенде создаются атомарно.
func (r *Repository) Create(ctx context.Context, o *domain.ServiceOrder) (*domain.ServiceOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if o.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - generate id: %v", ErrBuildQuery, err)
		}
		o.ID = id.String()
	}

	query, args, err := psqlbuilder.Insert("service_orders").
		Columns(
			"id",
			"client_id",
			"service_kind",
			"hour_package",
			"vehicle_class",
			"armored",
			"driver_class",
			"outsourcing",
			"supplier_id",
			"status",
			"pickup_address",
			"dropoff_address",
			"passenger_name",
			"notes",
			"price_source",
			"rate_row_id",
			"subtotal",
			"tax_percent",
			"tax_amount",
			"total_price",
			"supplier_cost",
		).
		Values(
			o.ID,
			o.ClientID,
			o.ServiceKind,
			o.HourPackage,
			o.VehicleClass,
			o.Armored,
			o.DriverClass,
			o.Outsourcing,
			o.SupplierID,
			o.Status,
			o.PickupAddress,
			o.DropoffAddress,
			o.PassengerName,
			o.Notes,
			o.PriceSource,
			o.RateRowID,
			o.Subtotal,
			o.TaxPercent,
			o.TaxAmount,
			o.TotalPrice,
			o.SupplierCost,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return o, nil
}

// GetByID получает заказ по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до смены статуса.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ServiceOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("service_orders").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	o, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}

	return o, nil
}

// GetByIDs получает заказы по списку ID. Отсутствующие ID пропускаются
func (r *Repository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.ServiceOrder, error) {
	result := make(map[string]*domain.ServiceOrder, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("service_orders").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		result[o.ID] = o
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpdateStatus обновляет статус заказа
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_orders").
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": mutableStatuses}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", id, query, args)
}

// SaveCancellation переводит заказ в cancelled и сохраняет рассчитанный штраф
func (r *Repository) SaveCancellation(ctx context.Context, id string, c domain.Cancellation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_orders").
		Set("status", domain.OrderCancelled).
		Set("cancel_fee_percent", c.FeePercent).
		Set("cancel_fee_amount", c.FeeAmount).
		Set("cancel_window", c.WindowLabel).
		Set("cancel_reason", c.Reason).
		Set("cancelled_at", c.CancelledAt).
		Set("updated_at", c.CancelledAt).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": mutableStatuses}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveCancellation - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "SaveCancellation", id, query, args)
}

// execAffectingOne выполняет UPDATE одного заказа в неконечном статусе.
// Условие на статус проверяется в самом UPDATE, поэтому параллельная запись конечного статуса не перезаписывается
func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, id, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return r.missOrTerminal(ctx, executor, op, id)
	}

	return nil
}

// missOrTerminal различает отсутствующий заказ и заказ, уже перешедший в конечный статус
func (r *Repository) missOrTerminal(ctx context.Context, executor DBExecutor, op, id string) error {
	query, args, err := psqlbuilder.Select("1").
		From("service_orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build exists query: %v", ErrBuildQuery, op, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %s - check order exists: %v", ErrExecQuery, op, err)
	}
	return ErrStatusConflict
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(s scanner) (*domain.ServiceOrder, error) {
	var o domain.ServiceOrder
	var hourPackage sql.NullInt64
	var feePercent, feeAmount sql.NullInt64
	var window, reason sql.NullString
	var cancelledAt sql.NullTime

	err := s.Scan(
		&o.ID,
		&o.ClientID,
		&o.ServiceKind,
		&hourPackage,
		&o.VehicleClass,
		&o.Armored,
		&o.DriverClass,
		&o.Outsourcing,
		&o.SupplierID,
		&o.Status,
		&o.PickupAddress,
		&o.DropoffAddress,
		&o.PassengerName,
		&o.Notes,
		&o.PriceSource,
		&o.RateRowID,
		&o.Subtotal,
		&o.TaxPercent,
		&o.TaxAmount,
		&o.TotalPrice,
		&o.SupplierCost,
		&feePercent,
		&feeAmount,
		&window,
		&reason,
		&cancelledAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if hourPackage.Valid {
		hp := int(hourPackage.Int64)
		o.HourPackage = &hp
	}

	if cancelledAt.Valid {
		o.Cancellation = &domain.Cancellation{
			FeePercent:  money.Percent(feePercent.Int64),
			FeeAmount:   money.Money(feeAmount.Int64),
			WindowLabel: window.String,
			Reason:      reason.String,
			CancelledAt: cancelledAt.Time,
		}
	}

	return &o, nil
}
