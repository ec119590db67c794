package models

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/pkg/money"
)

// Request модели

// WindowRequest окно политики отмены
type WindowRequest struct {
	ThresholdHours int           `json:"thresholdHours"` // не меньше стольких часов до начала
	FeePercent     money.Percent `json:"feePercent"`     // 0..100
	Label          string        `json:"label"`
}

// UpdateSettingsRequest запрос на замену глобальных настроек целиком
type UpdateSettingsRequest struct {
	SystemTaxPercent   money.Percent   `json:"systemTaxPercent"`
	CancellationPolicy []WindowRequest `json:"cancellationPolicy"`
}

// ToDomainSettings конвертирует запрос в доменную модель
func (r *UpdateSettingsRequest) ToDomainSettings() (*domain.Settings, error) {
	policy := make([]domain.CancellationWindow, 0, len(r.CancellationPolicy))
	for _, w := range r.CancellationPolicy {
		window, err := domain.NewCancellationWindow(w.ThresholdHours, w.FeePercent, w.Label)
		if err != nil {
			return nil, err
		}
		policy = append(policy, window)
	}

	s := &domain.Settings{
		SystemTaxPercent:   r.SystemTaxPercent,
		CancellationPolicy: policy,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Response модели

// SettingsResponse ответ с глобальными настройками
type SettingsResponse struct {
	SystemTaxPercent   money.Percent               `json:"systemTaxPercent"`
	CancellationPolicy []domain.CancellationWindow `json:"cancellationPolicy"` // от самого раннего окна к позднему
	UpdatedAt          time.Time                   `json:"updatedAt"`
}

// VehicleListResponse ответ с каталогом автомобилей
type VehicleListResponse struct {
	Vehicles []domain.Vehicle `json:"vehicles"`
}

// Методы конвертации

// FromDomainSettings конвертирует настройки в DTO
func FromDomainSettings(s *domain.Settings) *SettingsResponse {
	if s == nil {
		return nil
	}

	policy := append([]domain.CancellationWindow(nil), s.CancellationPolicy...)
	sort.SliceStable(policy, func(i, j int) bool {
		return policy[i].ThresholdHours > policy[j].ThresholdHours
	})

	return &SettingsResponse{
		SystemTaxPercent:   s.SystemTaxPercent,
		CancellationPolicy: policy,
		UpdatedAt:          s.UpdatedAt,
	}
}

// FromDomainVehicles конвертирует каталог в DTO
func FromDomainVehicles(vehicles []domain.Vehicle) *VehicleListResponse {
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	return &VehicleListResponse{Vehicles: vehicles}
}
