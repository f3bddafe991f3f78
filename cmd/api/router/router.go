package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"vb-capital-ai/cmd/api/handlers"
	"vb-capital-ai/cmd/api/middleware"
	"vb-capital-ai/cmd/api/services"
	"vb-capital-ai/config"
	_ "vb-capital-ai/docs"
)

// SignInPath 의 요청 바디(비밀번호)는 요청 로그에 남기지 않는다.
const SignInPath = "/api/v1/auth/signin"

type Services struct {
	Bridge   *services.BridgeService
	Sessions *services.SessionService
	Feedback *services.FeedbackService
	// AILogs 가 nil 이면 (mongo 미설정) 조회 경로를 등록하지 않는다.
	AILogs handlers.AILogFinder
}

func New(cfg config.ServerConfig, svcs Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace(SignInPath))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.GET("/health", handlers.HealthHandler())

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prompt Bridge. 프론트엔드가 호출하는 경로 그대로 유지한다.
	r.POST("/api/chat", handlers.ChatHandler(svcs.Bridge))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.POST("/auth/signin", handlers.SignInHandler())
		api.POST("/feedback", handlers.FeedbackHandler(svcs.Feedback))
		if svcs.AILogs != nil {
			api.GET("/ai-logs/:request_id", handlers.AILogsHandler(svcs.AILogs))
		}

		sessions := api.Group("/sessions")
		sessions.POST("", handlers.CreateSessionHandler(svcs.Sessions))
		sessions.GET("/:id", handlers.GetSessionHandler(svcs.Sessions))
		sessions.DELETE("/:id", handlers.DeleteSessionHandler(svcs.Sessions))
		sessions.POST("/:id/messages", handlers.SubmitMessageHandler(svcs.Sessions))
		sessions.POST("/:id/conversations", handlers.NewConversationHandler(svcs.Sessions))
		sessions.POST("/:id/conversations/:cid/select", handlers.SelectConversationHandler(svcs.Sessions))
		sessions.GET("/:id/suggestions", handlers.SuggestionsHandler(svcs.Sessions))
	}

	return r
}
