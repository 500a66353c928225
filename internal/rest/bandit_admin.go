package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/business/bandit"
	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/domain"
)

type BanditAdminHandler struct {
	cfgRepo bandit.ConfigRepository
}

func NewBanditAdminHandler(cfgRepo bandit.ConfigRepository) *BanditAdminHandler {
	return &BanditAdminHandler{cfgRepo: cfgRepo}
}

// GET /api/v1/admin/bandit/config?context_id=role-42
func (h *BanditAdminHandler) GetConfig(c echo.Context) error {
	ctx := c.Request().Context()
	contextID := c.QueryParam("context_id")

	if contextID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "context_id is required",
		})
	}

	cfg, ok, err := h.cfgRepo.GetConfig(ctx, contextID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "config not found",
		})
	}

	return c.JSON(http.StatusOK, cfg)
}

// PUT /api/v1/admin/bandit/config
// body: BanditEngineConfig JSON
func (h *BanditAdminHandler) UpsertConfig(c echo.Context) error {
	ctx := c.Request().Context()

	var body domain.BanditEngineConfig
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}
	if body.ContextID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "context_id is required",
		})
	}

	if err := h.cfgRepo.UpsertConfig(ctx, body); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
	})
}
