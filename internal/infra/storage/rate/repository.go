package rate

import (
	"context"
	"database/sql"
	"encoding/json"
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
	"service_kind",
	"hour_package",
	"vehicle_class",
	"armored",
	"driver_class",
	"client_price",
	"supplier_price",
	"adjustments",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий строк прайса в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория прайса
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет строку прайса. ID генерируется, если не задан
func (r *Repository) Create(ctx context.Context, row *domain.RateRow) (*domain.RateRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if row.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - generate id: %v", ErrBuildQuery, err)
		}
		row.ID = id.String()
	}

	adjustments, err := json.Marshal(nonNilAdjustments(row.Adjustments))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal adjustments: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("rate_rows").
		Columns(
			"id",
			"service_kind",
			"hour_package",
			"vehicle_class",
			"armored",
			"driver_class",
			"client_price",
			"supplier_price",
			"adjustments",
			"active",
		).
		Values(
			row.ID,
			row.ServiceKind,
			row.HourPackage,
			row.VehicleClass,
			row.Armored,
			row.DriverClass,
			row.ClientPrice,
			row.SupplierPrice,
			adjustments,
			row.Active,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return row, nil
}

// GetByID получает строку прайса по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.RateRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("rate_rows").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row, err := scanRow(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rate row: %v", ErrScanRow, err)
	}

	return row, nil
}

// ListActive возвращает активные строки в порядке создания.
// Порядок значим: при дублях резолвер берёт первую строку.
func (r *Repository) ListActive(ctx context.Context) ([]domain.RateRow, error) {
	return r.list(ctx, true, "ListActive")
}

// List возвращает все строки прайса, включая неактивные
func (r *Repository) List(ctx context.Context) ([]domain.RateRow, error) {
	return r.list(ctx, false, "List")
}

func (r *Repository) list(ctx context.Context, activeOnly bool, op string) ([]domain.RateRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("rate_rows").
		OrderBy("created_at ASC", "id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]domain.RateRow, 0)
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		result = append(result, *row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return result, nil
}

// SetActive включает или выключает строку прайса
func (r *Repository) SetActive(ctx context.Context, id string, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rate_rows").
		Set("active", active).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRateNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRow(s scanner) (*domain.RateRow, error) {
	var row domain.RateRow
	var hourPackage sql.NullInt64
	var adjustments []byte

	err := s.Scan(
		&row.ID,
		&row.ServiceKind,
		&hourPackage,
		&row.VehicleClass,
		&row.Armored,
		&row.DriverClass,
		&row.ClientPrice,
		&row.SupplierPrice,
		&adjustments,
		&row.Active,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if hourPackage.Valid {
		hp := int(hourPackage.Int64)
		row.HourPackage = &hp
	}
	if len(adjustments) > 0 {
		if err := json.Unmarshal(adjustments, &row.Adjustments); err != nil {
			return nil, fmt.Errorf("decode adjustments: %v", err)
		}
	}

	return &row, nil
}

func nonNilAdjustments(a []domain.Adjustment) []domain.Adjustment {
	if a == nil {
		return []domain.Adjustment{}
	}
	return a
}
