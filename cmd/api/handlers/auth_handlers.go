package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vb-capital-ai/cmd/api/auth"
	"vb-capital-ai/cmd/api/dto"
	"vb-capital-ai/internal/logger"
)

// SignInHandler godoc
// @Summary      데모 로그인
// @Description  고정된 데모 계정(demo/demo)만 확인한다. 토큰이나 세션은 발급하지 않는다.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SignInRequestDTO  true  "credentials"
// @Success      200   {object}  dto.SignInResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      401   {object}  dto.ErrorResponseDTO
// @Router       /api/v1/auth/signin [post]
func SignInHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.SignInRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "Invalid request body", Code: "malformed_request"})
			return
		}

		err := auth.CheckDemoCredentials(req.UserID, req.Password)
		fields := logger.Fields{
			"user_id":    req.UserID,
			"request_id": c.GetHeader("X-Request-Id"),
		}
		if err != nil {
			fields["reason"] = err.Error()
			logger.WarnWithFields("sign in rejected", fields)
			if auth.StatusFor(err) == http.StatusUnauthorized {
				auth.AbortWithUnauthorized(c, err)
				return
			}
			c.JSON(auth.StatusFor(err), dto.ErrorResponseDTO{Error: auth.MessageFor(err), Code: err.Error()})
			return
		}

		logger.InfoWithFields("sign in succeeded", fields)
		c.JSON(http.StatusOK, dto.SignInResponseDTO{Message: auth.MessageFor(nil), UserID: req.UserID})
	}
}
