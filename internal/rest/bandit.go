package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/business/bandit"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/pkg/metrics"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type (
	BanditHandler struct {
		validate      *validator.Validate
		banditService BanditService
	}

	BanditService interface {
		OpenContext(ctx context.Context, contextID string, arms []domain.Arm) error
		Select(ctx context.Context, contextID string) (string, error)
		DebugSelect(ctx context.Context, contextID string) (string, []domain.SelectionDebug, error)
		RecordOutcome(ctx context.Context, contextID string, ev domain.OutcomeEvent) error
		Summary(ctx context.Context, contextID string) (domain.LearningSnapshot, error)
		ExportState(ctx context.Context, contextID string) (domain.ContextState, error)
		RestoreContext(ctx context.Context, contextID string) error
		Checkpoint(ctx context.Context, contextID string) error
		CloseContext(ctx context.Context, contextID string) error
	}

	ArmRequest struct {
		ArmID      string   `json:"arm_id" validate:"required"`
		Similarity *float64 `json:"similarity"`
	}

	OpenContextRequest struct {
		ContextID string       `json:"context_id" validate:"required"`
		Arms      []ArmRequest `json:"arms" validate:"required,min=1,dive"`
	}

	FeedbackRequest struct {
		ArmID     string   `json:"arm_id" validate:"required"`
		EventType string   `json:"event_type" validate:"omitempty,oneof=reply no_reply screen_pass screen_fail interview hire"`
		Reward    *float64 `json:"reward"`
	}

	SelectionResponse struct {
		ContextID string `json:"context_id"`
		ArmID     string `json:"arm_id"`
	}
)

func NewBanditHandler(svc BanditService) *BanditHandler {
	return &BanditHandler{
		validate:      validator.New(),
		banditService: svc,
	}
}

// httpStatusFor maps engine sentinel errors onto HTTP statuses.
func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, bandit.ErrUnknownContext), errors.Is(err, bandit.ErrUnknownArm):
		return http.StatusNotFound
	case errors.Is(err, bandit.ErrClosedContext):
		return http.StatusConflict
	case errors.Is(err, bandit.ErrEmptyArmSet),
		errors.Is(err, bandit.ErrInvalidReward),
		errors.Is(err, bandit.ErrInvalidSimilarity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// POST /api/v1/bandit/contexts
func (h *BanditHandler) OpenContext(c echo.Context) error {
	var req OpenContextRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	arms := make([]domain.Arm, 0, len(req.Arms))
	for _, a := range req.Arms {
		arms = append(arms, domain.Arm{ID: a.ArmID, Similarity: a.Similarity})
	}

	if err := h.banditService.OpenContext(c.Request().Context(), req.ContextID, arms); err != nil {
		return c.JSON(httpStatusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("context opened"))
}

// POST /api/v1/bandit/contexts/:id/selection
func (h *BanditHandler) Select(c echo.Context) error {
	start := time.Now()
	contextID := c.Param("id")

	armID, err := h.banditService.Select(c.Request().Context(), contextID)
	if err != nil {
		return c.JSON(httpStatusFor(err), ResponseError{Message: err.Error()})
	}

	metrics.SelectionRequests.Inc()
	metrics.SelectionLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(SelectionResponse{
		ContextID: contextID,
		ArmID:     armID,
	}))
}

// GET /api/v1/bandit/contexts/:id/selection/debug
func (h *BanditHandler) DebugSelect(c echo.Context) error {
	contextID := c.Param("id")

	armID, debug, err := h.banditService.DebugSelect(c.Request().Context(), contextID)
	if err != nil {
		return c.JSON(httpStatusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(echo.Map{
		"context_id": contextID,
		"arm_id":     armID,
		"scores":     debug,
	}))
}

// POST /api/v1/bandit/contexts/:id/feedback
func (h *BanditHandler) Feedback(c echo.Context) error {
	contextID := c.Param("id")

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if req.EventType == "" && req.Reward == nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "event_type or reward is required"})
	}

	ev := domain.OutcomeEvent{
		ArmID:     req.ArmID,
		EventType: req.EventType,
		Reward:    req.Reward,
	}

	if err := h.banditService.RecordOutcome(c.Request().Context(), contextID, ev); err != nil {
		return c.JSON(httpStatusFor(err), ResponseError{Message: err.Error()})
	}

	metrics.FeedbackRequests.Inc()

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("feedback recorded"))
}

// GET /api/v1/bandit/contexts/:id/summary
func (h *BanditHandler) Summary(c echo.Context) error {
	contextID := c.Param("id")

	snapshot, err := h.banditService.Summary(c.Request().Context(), contextID)
	if err != nil {
		return c.JSON(httpStatusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(snapshot))
}

// GET /api/v1/bandit/contexts/:id/state
func (h *BanditHandler) ExportState(c echo.Context) error {
	contextID := c.Param("id")

	state, err := h.banditService.ExportState(c.Request().Context(), contextID)
	if err != nil {
		return c.JSON(httpStatusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(state))
}

// POST /api/v1/bandit/contexts/:id/restore
func (h *BanditHandler) RestoreContext(c echo.Context) error {
	contextID := c.Param("id")

	if err := h.banditService.RestoreContext(c.Request().Context(), contextID); err != nil {
		return c.JSON(httpStatusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("context restored"))
}

// POST /api/v1/bandit/contexts/:id/checkpoint
func (h *BanditHandler) Checkpoint(c echo.Context) error {
	contextID := c.Param("id")

	if err := h.banditService.Checkpoint(c.Request().Context(), contextID); err != nil {
		return c.JSON(httpStatusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("state checkpointed"))
}

// POST /api/v1/bandit/contexts/:id/close
func (h *BanditHandler) CloseContext(c echo.Context) error {
	contextID := c.Param("id")

	if err := h.banditService.CloseContext(c.Request().Context(), contextID); err != nil {
		return c.JSON(httpStatusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("context closed"))
}
