package get_agenda

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAgenda "github.com/m04kA/SMC-TransferService/internal/usecase/get_agenda"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getAgenda.Request) (*getAgenda.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAgenda.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle_DatesUseBusinessTimezone(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getAgenda.Request) bool {
		return r.From.Equal(time.Date(2026, 8, 3, 3, 0, 0, 0, time.UTC)) &&
			r.To.Equal(time.Date(2026, 8, 4, 3, 0, 0, 0, time.UTC))
	})).Return(&getAgenda.Response{Items: []getAgenda.Item{}}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, loc, 0, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/agenda?from=2026-08-03&to=2026-08-04", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_RFC3339(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getAgenda.Request) bool {
		return r.From.Equal(time.Date(2026, 8, 3, 8, 0, 0, 0, time.UTC))
	})).Return(&getAgenda.Response{Items: []getAgenda.Item{}}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, nil, 0, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/agenda?from=2026-08-03T08:00:00Z&to=2026-08-03T20:00:00Z", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestHandle_DefaultsToLookaround(t *testing.T) {
	uc := &mockUseCase{}
	from := time.Date(2026, 8, 3, 8, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getAgenda.Request) bool {
		return r.From.Equal(from) && r.To.Equal(from.Add(12*time.Hour))
	})).Return(&getAgenda.Response{Items: []getAgenda.Item{}}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, time.UTC, 12*time.Hour, nopLogger{}).Handle(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/agenda?from=2026-08-03T08:00:00Z", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{name: "missing from", query: "to=2026-08-03", wantStatus: http.StatusBadRequest},
		{name: "bad from", query: "from=yesterday&to=2026-08-03", wantStatus: http.StatusBadRequest},
		{name: "bad to", query: "from=2026-08-03&to=03/08/2026", wantStatus: http.StatusBadRequest},
		{name: "inverted", query: "from=2026-08-04&to=2026-08-03", err: getAgenda.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "malformed data", query: "from=2026-08-03&to=2026-08-04", err: getAgenda.ErrMalformedAppointment, wantStatus: http.StatusInternalServerError},
		{name: "internal", query: "from=2026-08-03&to=2026-08-04", err: getAgenda.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(uc, time.UTC, 0, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/agenda?"+tt.query, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
