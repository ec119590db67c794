package cancel_order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TransferService/internal/domain"
	cancelOrder "github.com/m04kA/SMC-TransferService/internal/usecase/cancel_order"
	"github.com/m04kA/SMC-TransferService/pkg/money"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *cancelOrder.Request) (*cancelOrder.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*cancelOrder.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc CancelOrderUseCase, req *http.Request) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/orders/{orderId}/cancel", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	start := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &cancelOrder.Request{OrderID: "order-1", Reason: "flight delayed"}).
		Return(&cancelOrder.Response{
			OrderID:        "order-1",
			Status:         domain.OrderCancelled,
			ScheduledStart: start,
			CancelledAt:    start.Add(-10 * time.Hour),
			LeadTime:       10 * time.Hour,
			FeePercent:     money.PercentFromInt(50),
			FeeAmount:      money.FromUnits(66),
			WindowLabel:    "less than 24h",
			OrderTotal:     money.FromUnits(132),
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/order-1/cancel", strings.NewReader(`{"reason":"flight delayed"}`))
	rec := serve(uc, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"orderId":"order-1","status":"cancelled",
		"scheduledStart":"2026-08-03T09:00:00Z","cancelledAt":"2026-08-02T23:00:00Z",
		"leadTimeHours":10,"feePercent":50,"feeAmount":"66.00",
		"windowLabel":"less than 24h","orderTotal":"132.00"
	}`, rec.Body.String())
}

func TestHandle_EmptyBody(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &cancelOrder.Request{OrderID: "order-1"}).
		Return(&cancelOrder.Response{OrderID: "order-1", Status: domain.OrderCancelled}, nil)

	rec := serve(uc, httptest.NewRequest(http.MethodPost, "/api/v1/orders/order-1/cancel", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: cancelOrder.ErrOrderNotFound, wantStatus: http.StatusNotFound},
		{name: "terminal status", err: cancelOrder.ErrCannotCancel, wantStatus: http.StatusConflict},
		{name: "no policy", err: cancelOrder.ErrNoPolicyConfigured, wantStatus: http.StatusConflict},
		{name: "no schedule", err: cancelOrder.ErrScheduleNotFound, wantStatus: http.StatusConflict},
		{name: "invalid input", err: cancelOrder.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: cancelOrder.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(uc, httptest.NewRequest(http.MethodPost, "/api/v1/orders/order-1/cancel", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
