package get_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TransferService/internal/api/handlers"
	"github.com/m04kA/SMC-TransferService/internal/service/settings"
)

const msgNotFound = "глобальные настройки не заданы"

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			h.logger.Warn("GET /settings - Settings not found")
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /settings - Failed to get settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
