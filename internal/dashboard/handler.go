package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
)

// Handler serves the dashboard metrics endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.Metrics(r.Context())
	if err != nil {
		h.logger.Error("dashboard metrics", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
