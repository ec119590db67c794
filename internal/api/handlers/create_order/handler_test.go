package create_order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	"github.com/m04kA/SMC-TransferService/internal/rules/conflicts"
	"github.com/m04kA/SMC-TransferService/internal/service/orders"
	"github.com/m04kA/SMC-TransferService/internal/service/orders/models"
	"github.com/m04kA/SMC-TransferService/pkg/money"
)

type mockService struct{ mock.Mock }

func (m *mockService) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.CreateOrderResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const body = `{
	"clientId":"client-1","serviceKind":"transfer","vehicleClass":"sedan","driverClass":"mono",
	"pickupAddress":"Airport","start":"2026-08-03T09:00:00Z","end":"2026-08-03T10:30:00Z"
}`

func TestHandle_CreatedWithConflicts(t *testing.T) {
	svc := &mockService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(r *models.CreateOrderRequest) bool {
		return r.ClientID == "client-1" && r.End != nil && r.End.Equal(time.Date(2026, 8, 3, 10, 30, 0, 0, time.UTC))
	})).Return(&models.CreateOrderResponse{
		Order: models.OrderResponse{ServiceOrder: &domain.ServiceOrder{
			ID:         "order-1",
			Status:     domain.OrderReserved,
			TotalPrice: money.FromUnits(132),
		}},
		Conflicts: &conflicts.Verdict{HasConflict: true, VehicleConflict: true, ConflictingOrderIDs: []string{"order-0"}},
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var got struct {
		Order struct {
			ID         string `json:"id"`
			Status     string `json:"status"`
			TotalPrice string `json:"totalPrice"`
		} `json:"order"`
		Conflicts conflicts.Verdict `json:"conflicts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "order-1", got.Order.ID)
	assert.Equal(t, "reserved", got.Order.Status)
	assert.Equal(t, "132.00", got.Order.TotalPrice)
	assert.True(t, got.Conflicts.VehicleConflict)
	assert.Equal(t, []string{"order-0"}, got.Conflicts.ConflictingOrderIDs)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "unknown field", body: `{"clientId":"c","color":"red"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid input", body: body, err: orders.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unknown vehicle", body: body, err: orders.ErrUnknownVehicleClass, wantStatus: http.StatusBadRequest},
		{name: "no rate", body: body, err: orders.ErrRateNotFound, wantStatus: http.StatusNotFound},
		{name: "no settings", body: body, err: orders.ErrSettingsNotConfigured, wantStatus: http.StatusConflict},
		{name: "internal", body: body, err: orders.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
