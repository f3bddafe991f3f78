package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vb-capital-ai/cmd/api/dto"
	"vb-capital-ai/cmd/api/services"
)

// ChatHandler godoc
// @Summary      Prompt Bridge
// @Description  대화 턴 목록을 Gemini 로 전달하고 assistant 답변 한 개를 돌려준다.
// @Description  기본 설정(prompt_history: latest)에서는 마지막 턴만 시스템 프롬프트와 함께 전송된다.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ChatRequestDTO  true  "chat turns"
// @Success      200   {object}  dto.ChatResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO  "malformed_request"
// @Failure      429   {object}  dto.ErrorResponseDTO  "rate_limited"
// @Failure      500   {object}  dto.ErrorResponseDTO  "configuration_error 또는 upstream_error"
// @Router       /api/chat [post]
func ChatHandler(bridge *services.BridgeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ChatRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithBridgeError(c, services.NewMalformedRequestError(err.Error(), err))
			return
		}

		reply, err := bridge.GenerateReply(c.Request.Context(), req.Turns())
		if err != nil {
			abortWithBridgeError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.ChatResponseDTO{Role: reply.Role, Content: reply.Content})
	}
}
