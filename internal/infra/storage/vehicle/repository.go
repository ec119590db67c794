package vehicle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TransferService/pkg/psqlbuilder"
)

// Repository репозиторий каталога автомобилей в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает каталог, отсортированный по классу
func (r *Repository) List(ctx context.Context) ([]domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("class", "label", "seats", "active").
		From("vehicles").
		OrderBy("class ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.Vehicle, 0)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.Class, &v.Label, &v.Seats, &v.Active); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		result = append(result, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// GetByClass получает запись каталога по классу
func (r *Repository) GetByClass(ctx context.Context, class string) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("class", "label", "seats", "active").
		From("vehicles").
		Where(squirrel.Eq{"class": class}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByClass - build select query: %v", ErrBuildQuery, err)
	}

	var v domain.Vehicle
	err = executor.QueryRowContext(ctx, query, args...).Scan(&v.Class, &v.Label, &v.Seats, &v.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClass - scan vehicle: %v", ErrScanRow, err)
	}

	return &v, nil
}

// Upsert создаёт или обновляет запись каталога
func (r *Repository) Upsert(ctx context.Context, v domain.Vehicle) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vehicles").
		Columns("class", "label", "seats", "active").
		Values(v.Class, v.Label, v.Seats, v.Active).
		Suffix(`ON CONFLICT (class) DO UPDATE SET
			label = EXCLUDED.label,
			seats = EXCLUDED.seats,
			active = EXCLUDED.active`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
