package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vb-capital-ai/chat"
	"vb-capital-ai/cmd/api/dto"
	"vb-capital-ai/cmd/api/services"
	"vb-capital-ai/internal/logger"
)

const codeSessionBusy = "session_busy"

func toSessionDTO(id string, snap chat.Snapshot) dto.SessionDTO {
	return dto.SessionDTO{
		ID:                   id,
		State:                string(snap.State),
		Sending:              snap.State == chat.StateSending,
		Turns:                snap.Turns,
		Conversations:        snap.Conversations,
		ActiveConversationID: snap.ActiveConversationID,
	}
}

// lookupSession 은 세션이 없으면 404 를 응답하고 false 를 반환한다.
func lookupSession(c *gin.Context, svc *services.SessionService) (string, *chat.Session, bool) {
	id := c.Param("id")
	sess, err := svc.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "session not found", Code: "session_not_found"})
		return "", nil, false
	}
	return id, sess, true
}

func respondBusy(c *gin.Context) {
	c.JSON(http.StatusConflict, dto.ErrorResponseDTO{Error: "a reply is still pending", Code: codeSessionBusy})
}

// CreateSessionHandler godoc
// @Summary      대화 세션 생성
// @Description  인사말 한 턴만 가진 새 세션을 만든다. 오래 쓰지 않은 세션은 이때 정리된다.
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  dto.SessionDTO
// @Router       /api/v1/sessions [post]
func CreateSessionHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, sess := svc.Create()
		c.JSON(http.StatusCreated, toSessionDTO(id, sess.Snapshot()))
	}
}

// GetSessionHandler godoc
// @Summary      대화 세션 조회
// @Description  화면에 보이는 턴, 최근 대화 목록, 전송 중 여부를 돌려준다.
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "세션 ID"
// @Success      200  {object}  dto.SessionDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /api/v1/sessions/{id} [get]
func GetSessionHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, sess, ok := lookupSession(c, svc)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, toSessionDTO(id, sess.Snapshot()))
	}
}

// DeleteSessionHandler godoc
// @Summary      대화 세션 종료
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "세션 ID"
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /api/v1/sessions/{id} [delete]
func DeleteSessionHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.End(c.Param("id")); err != nil {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: err.Error(), Code: "session_not_found"})
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "deleted"})
	}
}

// SubmitMessageHandler godoc
// @Summary      메시지 전송
// @Description  사용자 턴을 추가하고 Bridge 를 호출한다. Bridge 가 실패해도 200 이며 reply 는 사과 문구, error 에 원인이 담긴다.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true  "세션 ID"
// @Param        body  body      dto.SubmitMessageRequestDTO  true  "message"
// @Success      200   {object}  dto.SubmitMessageResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      404   {object}  dto.ErrorResponseDTO
// @Failure      409   {object}  dto.ErrorResponseDTO  "이전 답변 대기 중"
// @Router       /api/v1/sessions/{id}/messages [post]
func SubmitMessageHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, sess, ok := lookupSession(c, svc)
		if !ok {
			return
		}

		var req dto.SubmitMessageRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithBridgeError(c, services.NewMalformedRequestError(err.Error(), err))
			return
		}

		result, err := sess.Submit(c.Request.Context(), req.Content)
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			abortWithBridgeError(c, services.NewMalformedRequestError("content must not be empty", err))
			return
		case errors.Is(err, chat.ErrBusy):
			respondBusy(c)
			return
		case err != nil:
			abortWithBridgeError(c, err)
			return
		}

		resp := dto.SubmitMessageResponseDTO{
			UserTurn:            result.UserTurn,
			Reply:               result.Reply,
			Failed:              result.Failed,
			Conversation:        result.Conversation,
			ConversationCreated: result.Created,
		}
		if result.Failed {
			_, body := bridgeErrorResponse(result.Cause)
			resp.Error = &body
			logger.WarnWithFields("chat exchange failed", logger.Fields{
				"session_id": id,
				"code":       body.Code,
				"request_id": c.GetHeader("X-Request-Id"),
			})
		}
		c.JSON(http.StatusOK, resp)
	}
}

// NewConversationHandler godoc
// @Summary      새 대화 시작
// @Description  화면의 턴을 인사말로 되돌리고 활성 대화를 해제한다. 저장된 대화 목록은 유지된다.
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "세션 ID"
// @Success      200  {object}  dto.SessionDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      409  {object}  dto.ErrorResponseDTO
// @Router       /api/v1/sessions/{id}/conversations [post]
func NewConversationHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, sess, ok := lookupSession(c, svc)
		if !ok {
			return
		}
		if err := sess.StartNewConversation(); err != nil {
			respondBusy(c)
			return
		}
		c.JSON(http.StatusOK, toSessionDTO(id, sess.Snapshot()))
	}
}

// SelectConversationHandler godoc
// @Summary      대화 선택
// @Description  저장된 대화의 턴을 화면에 불러온다. 없는 대화 ID 는 아무것도 바꾸지 않고 selected=false 로 응답한다.
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "세션 ID"
// @Param        cid  path      string  true  "대화 ID"
// @Success      200  {object}  dto.SelectConversationResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      409  {object}  dto.ErrorResponseDTO
// @Router       /api/v1/sessions/{id}/conversations/{cid}/select [post]
func SelectConversationHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, sess, ok := lookupSession(c, svc)
		if !ok {
			return
		}
		selected, err := sess.SelectConversation(c.Param("cid"))
		if err != nil {
			respondBusy(c)
			return
		}
		c.JSON(http.StatusOK, dto.SelectConversationResponseDTO{
			Selected: selected,
			Session:  toSessionDTO(id, sess.Snapshot()),
		})
	}
}

// SuggestionsHandler godoc
// @Summary      추천 질문
// @Description  최근 질문 중 10자를 넘는 것 3개, 부족하면 고정된 인기 질문 3개.
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "세션 ID"
// @Success      200  {object}  dto.SuggestionsResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /api/v1/sessions/{id}/suggestions [get]
func SuggestionsHandler(svc *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, sess, ok := lookupSession(c, svc)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, dto.SuggestionsResponseDTO{Suggestions: sess.Suggestions()})
	}
}
