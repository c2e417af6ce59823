package expenses

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
)

// Handler manages expense claim endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("userId"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid userId")
			return
		}
		out, err := h.service.ListByUser(r.Context(), userID)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, out)
		return
	}
	out, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list expense claims", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid claim id")
		return
	}
	claim, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, claim)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateClaimRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	claim, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create expense claim", slog.Any("error", err), slog.String("claimNumber", req.ClaimNumber))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, claim)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid claim id")
		return
	}
	var req UpdateClaimRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := httpx.Validate(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	claim, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, claim)
}

func (h *Handler) decide(do func(*http.Request, uuid.UUID, DecisionRequest) (ExpenseClaim, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid claim id")
			return
		}
		var req DecisionRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := httpx.Validate(req); err != nil {
			httpx.RespondError(w, err)
			return
		}
		claim, err := do(r, id, req)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, claim)
	}
}

func (h *Handler) approve(r *http.Request, id uuid.UUID, req DecisionRequest) (ExpenseClaim, error) {
	return h.service.Approve(r.Context(), id, req.ActorID, req.Note)
}

func (h *Handler) reject(r *http.Request, id uuid.UUID, req DecisionRequest) (ExpenseClaim, error) {
	return h.service.Reject(r.Context(), id, req.ActorID, req.Note)
}

func (h *Handler) pay(r *http.Request, id uuid.UUID, req DecisionRequest) (ExpenseClaim, error) {
	return h.service.Pay(r.Context(), id, req.ActorID, req.Note)
}
