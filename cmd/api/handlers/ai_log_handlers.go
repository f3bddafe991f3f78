package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"vb-capital-ai/cmd/api/dto"
	"vb-capital-ai/internal/logger"
	"vb-capital-ai/models"
)

// AILogFinder 는 요청 ID 로 Gemini 호출 기록을 찾는다. repositories.AILogRepository 가 구현한다.
type AILogFinder interface {
	FindByRequestID(ctx context.Context, requestID string) ([]models.AILog, error)
}

// AILogsHandler godoc
// @Summary      Gemini 호출 기록 조회
// @Description  X-Request-Id 로 해당 요청이 만든 Gemini 호출 기록을 오래된 순으로 돌려준다. mongo.uri 가 설정된 경우에만 등록된다.
// @Tags         ai-logs
// @Produce      json
// @Param        request_id  path      string  true  "X-Request-Id"
// @Success      200  {object}  dto.AILogsResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /api/v1/ai-logs/{request_id} [get]
func AILogsHandler(finder AILogFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Param("request_id")
		logs, err := finder.FindByRequestID(c.Request.Context(), requestID)
		if err != nil {
			logger.ErrorWithFields("ai log lookup failed", logger.Fields{"lookup_request_id": requestID, "error": err.Error()})
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed to load ai logs", Code: "ai_log_lookup_failed"})
			return
		}
		if len(logs) == 0 {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "no ai calls for request", Code: "ai_log_not_found"})
			return
		}
		c.JSON(http.StatusOK, dto.AILogsResponseDTO{RequestID: requestID, Logs: logs})
	}
}
