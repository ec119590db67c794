package get_agenda

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TransferService/internal/api/handlers"
	"github.com/m04kA/SMC-TransferService/internal/domain"
	getAgenda "github.com/m04kA/SMC-TransferService/internal/usecase/get_agenda"
)

const (
	msgMissingFrom   = "параметр from обязателен"
	msgInvalidFrom   = "некорректный параметр from, ожидается RFC3339 или YYYY-MM-DD"
	msgInvalidTo     = "некорректный параметр to, ожидается RFC3339 или YYYY-MM-DD"
	msgInvalidRange  = "некорректный период"
	msgMalformedData = "в агенде есть запись с некорректным интервалом"
)

type Handler struct {
	useCase    GetAgendaUseCase
	location   *time.Location
	lookaround time.Duration
	logger     Logger
}

// NewHandler location задаёт часовой пояс для дат без времени,
// lookaround - длину периода, если to не указан
func NewHandler(useCase GetAgendaUseCase, location *time.Location, lookaround time.Duration, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	if lookaround <= 0 {
		lookaround = domain.DefaultAgendaLookaroundHours * time.Hour
	}
	return &Handler{
		useCase:    useCase,
		location:   location,
		lookaround: lookaround,
		logger:     logger,
	}
}

// Handle GET /api/v1/agenda
// Query params: from (required), to (optional); RFC3339 or YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /agenda - Missing from")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	from, err := parseBound(fromStr, h.location)
	if err != nil {
		h.logger.Warn("GET /agenda - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}

	to := from.Add(h.lookaround)
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err = parseBound(toStr, h.location)
		if err != nil {
			h.logger.Warn("GET /agenda - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTo)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAgenda.Request{From: from, To: to})
	if err != nil {
		switch {
		case errors.Is(err, getAgenda.ErrInvalidInput):
			h.logger.Warn("GET /agenda - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAgenda.ErrMalformedAppointment):
			h.logger.Error("GET /agenda - Malformed stored data: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgMalformedData)

		default:
			h.logger.Error("GET /agenda - Failed to get agenda: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /agenda - Agenda fetched: items=%d, conflicts=%d", len(result.Items), result.ConflictCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
