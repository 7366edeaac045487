package handler

import (
	"net/http"

	"gatekeeper/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck godoc
//
//	@Summary	Liveness probe
//	@Tags		Health
//	@Produce	json
//	@Success	200	{object}	response.Health
//	@Router		/healthcheck [get]
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, response.Health{Status: "ok"})
}
