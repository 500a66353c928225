package router

import (
	"github.com/labstack/echo/v4"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/internal/rest"
)

func SetBanditRoutes(api *echo.Group, handler *rest.BanditHandler) {
	contexts := api.Group("/bandit/contexts")

	contexts.POST("", handler.OpenContext)
	contexts.POST("/:id/selection", handler.Select)
	contexts.GET("/:id/selection/debug", handler.DebugSelect)
	contexts.POST("/:id/feedback", handler.Feedback)
	contexts.GET("/:id/summary", handler.Summary)
	contexts.GET("/:id/state", handler.ExportState)
	contexts.POST("/:id/restore", handler.RestoreContext)
	contexts.POST("/:id/checkpoint", handler.Checkpoint)
	contexts.POST("/:id/close", handler.CloseContext)
}

func SetBanditAdminRoutes(api *echo.Group, handler *rest.BanditAdminHandler) {
	admin := api.Group("/admin/bandit")

	admin.GET("/config", handler.GetConfig)
	admin.PUT("/config", handler.UpsertConfig)
}
