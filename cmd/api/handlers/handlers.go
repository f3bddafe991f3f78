package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vb-capital-ai/cmd/api/dto"
	"vb-capital-ai/cmd/api/services"
)

// HealthHandler godoc
// @Summary      Liveness check
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponseDTO
// @Router       /health [get]
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponseDTO{Status: "ok"})
	}
}

func bridgeErrorResponse(err error) (int, dto.ErrorResponseDTO) {
	be := services.AsBridgeError(err)
	return be.StatusCode, dto.ErrorResponseDTO{
		Error:   be.Message,
		Details: be.Details,
		Code:    be.Code(),
	}
}

func abortWithBridgeError(c *gin.Context, err error) {
	status, body := bridgeErrorResponse(err)
	c.AbortWithStatusJSON(status, body)
}
