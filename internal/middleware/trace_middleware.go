package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vinayakvadoothker/x-recruiter-poc-sub001/business/bandit"
)

const traceHeader = "X-Trace-Id"

// TraceMiddleware attaches a trace id to every request context so engine
// logs can be correlated with the originating call. Incoming ids are
// honored; otherwise a fresh uuid is generated.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tid := c.Request().Header.Get(traceHeader)
			if tid == "" {
				tid = uuid.NewString()
			}

			req := c.Request()
			ctx := bandit.WithTraceID(req.Context(), tid)
			c.SetRequest(req.WithContext(ctx))
			c.Response().Header().Set(traceHeader, tid)

			return next(c)
		}
	}
}
