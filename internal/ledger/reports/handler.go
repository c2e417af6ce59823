package reports

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
)

// Handler manages financial report endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func queryDate(r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func (h *Handler) window(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	start, ok := queryDate(r, "startDate")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "startDate is required (YYYY-MM-DD)")
		return time.Time{}, time.Time{}, false
	}
	end, ok := queryDate(r, "endDate")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "endDate is required (YYYY-MM-DD)")
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		httpx.Error(w, http.StatusBadRequest, "endDate must not precede startDate")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *Handler) profitAndLoss(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.window(w, r)
	if !ok {
		return
	}
	report, err := h.service.ProfitAndLoss(r.Context(), start, end)
	if err != nil {
		h.logger.Error("profit and loss", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) balanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, ok := queryDate(r, "date")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "date is required (YYYY-MM-DD)")
		return
	}
	report, err := h.service.BalanceSheet(r.Context(), asOf)
	if err != nil {
		h.logger.Error("balance sheet", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) cashFlow(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.window(w, r)
	if !ok {
		return
	}
	report, err := h.service.CashFlow(r.Context(), start, end)
	if err != nil {
		h.logger.Error("cash flow", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) trialBalance(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.window(w, r)
	if !ok {
		return
	}
	report, err := h.service.TrialBalance(r.Context(), start, end)
	if err != nil {
		h.logger.Error("trial balance", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}
