package appointment

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
	"github.com/m04kA/SMC-TransferService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"order_id",
	"start_time",
	"end_time",
	"kind",
	"note",
	"created_at",
}

// Repository репозиторий записей агенды в PostgreSQL
type Repository struct {
	db     DBExecutor
	orders OrderReader
}

// NewRepository создает новый экземпляр репозитория агенды
func NewRepository(db DBExecutor, orders OrderReader) *Repository {
	return &Repository{db: db, orders: orders}
}

// Create сохраняет запись агенды
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if a.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - generate id: %v", ErrBuildQuery, err)
		}
		a.ID = id.String()
	}

	var orderID *string
	if a.OrderID != "" {
		orderID = &a.OrderID
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns("id", "order_id", "start_time", "end_time", "kind", "note").
		Values(a.ID, orderID, a.Start, a.End, a.Kind, a.Note).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return a, nil
}

// GetByOrderID получает запись агенды заказа
func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("start_time ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// ListWithOrders возвращает записи, пересекающие окно [from, to), вместе с их заказами.
// Отменённые заказы тоже возвращаются: решение об их участии принимает детектор.
func (r *Repository) ListWithOrders(ctx context.Context, from, to time.Time) ([]domain.ScheduledOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWithOrders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithOrders - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appts := make([]domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithOrders - scan row: %v", ErrScanRow, err)
		}
		appts = append(appts, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithOrders - rows error: %v", ErrScanRow, err)
	}

	return attachOrders(ctx, r.orders, appts)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(s scanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var orderID sql.NullString

	err := s.Scan(
		&a.ID,
		&orderID,
		&a.Start,
		&a.End,
		&a.Kind,
		&a.Note,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.OrderID = orderID.String
	return &a, nil
}
