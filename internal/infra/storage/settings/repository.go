package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TransferService/pkg/psqlbuilder"
)

// Repository репозиторий глобальных настроек в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки: системный налог и политику отмены
func (r *Repository) Get(ctx context.Context) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("system_tax_percent", "cancellation_policy", "updated_at").
		From("settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Settings
	var policy []byte

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.SystemTaxPercent, &policy, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(policy, &s.CancellationPolicy); err != nil {
		return nil, fmt.Errorf("%w: Get - decode policy: %v", ErrScanRow, err)
	}

	return &s, nil
}

// Save создаёт или заменяет настройки целиком
func (r *Repository) Save(ctx context.Context, s *domain.Settings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	policy, err := json.Marshal(s.CancellationPolicy)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal policy: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("settings").
		Columns("id", "system_tax_percent", "cancellation_policy", "updated_at").
		Values(settingsRowID, s.SystemTaxPercent, policy, s.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			system_tax_percent = EXCLUDED.system_tax_percent,
			cancellation_policy = EXCLUDED.cancellation_policy,
			updated_at = EXCLUDED.updated_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
