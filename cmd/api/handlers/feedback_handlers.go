package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vb-capital-ai/cmd/api/dto"
	"vb-capital-ai/cmd/api/services"
)

// FeedbackHandler godoc
// @Summary      답변 평가
// @Description  assistant 답변에 대한 helpful / not-helpful 평가를 이벤트로 발행한다.
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      dto.FeedbackRequestDTO  true  "feedback"
// @Success      202   {object}  dto.FeedbackResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /api/v1/feedback [post]
func FeedbackHandler(svc *services.FeedbackService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.FeedbackRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "Invalid request body", Details: err.Error(), Code: "malformed_request"})
			return
		}

		eventID, err := svc.Submit(c.Request.Context(), services.FeedbackInput{
			SessionID: req.SessionID,
			Feedback:  req.Feedback,
			Content:   req.Content,
		})
		if errors.Is(err, services.ErrInvalidFeedback) || errors.Is(err, services.ErrEmptyContent) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error(), Code: "invalid_feedback"})
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed to record feedback", Code: "feedback_publish_failed"})
			return
		}

		c.JSON(http.StatusAccepted, dto.FeedbackResponseDTO{EventID: eventID})
	}
}
