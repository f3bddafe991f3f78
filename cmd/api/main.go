package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vb-capital-ai/cmd/api/httpclient"
	"vb-capital-ai/cmd/api/quota"
	"vb-capital-ai/cmd/api/router"
	"vb-capital-ai/cmd/api/services"
	"vb-capital-ai/internal/logger"
	"vb-capital-ai/config"
	"vb-capital-ai/db"
	"vb-capital-ai/eventbus"
	"vb-capital-ai/gemini"
	"vb-capital-ai/repositories"
)

// @title           VB Capital AI API
// @version         1.0
// @description     Gemini prompt bridge, chat sessions and demo sign-in for VB Capital AI
// @BasePath        /
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Gemini 호출에는 클라이언트 타임아웃을 두지 않는다. 요청 컨텍스트만 따른다.
	generator := gemini.New(httpclient.New(httpclient.Config{NoTimeout: true}))

	bridgeOpts := []services.BridgeOption{
		services.WithQuota(quota.NewLimiter(cfg.Quota)),
	}
	var aiLogs *repositories.AILogRepository
	if err := db.Init(ctx, cfg.Mongo); err == nil {
		aiLogs = repositories.NewAILogRepository(db.Database())
		bridgeOpts = append(bridgeOpts, services.WithAILogRecorder(aiLogs))
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Close(shutdownCtx)
		}()
	} else if !errors.Is(err, db.ErrNotConfigured) {
		logger.ErrorWithFields("mongodb unavailable, ai call logging disabled", logger.Fields{"error": err.Error()})
	}

	publisher := newFeedbackPublisher(ctx, cfg.Kafka)
	defer publisher.Close()

	bridge := services.NewBridgeService(generator, cfg, bridgeOpts...)
	svcs := router.Services{
		Bridge:   bridge,
		Sessions: services.NewSessionService(bridge, cfg.Chat),
		Feedback: services.NewFeedbackService(publisher, eventbus.TopicOrDefault(cfg.Kafka.FeedbackTopic, eventbus.TopicChatFeedback)),
	}
	// typed nil 이 인터페이스에 들어가지 않도록 설정된 경우에만 넣는다.
	if aiLogs != nil {
		svcs.AILogs = aiLogs
	}
	r := router.New(cfg.Server, svcs)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.InfoWithFields("api server listening", logger.Fields{
		"addr":           cfg.Server.Addr,
		"model":          cfg.Gemini.ModelName,
		"prompt_history": cfg.Chat.PromptHistory,
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.ErrorWithFields("api server stopped", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}
}

// newFeedbackPublisher 는 Kafka 가 설정되어 있으면 토픽을 만들고 Producer 를 띄운다.
// 실패하거나 설정이 없으면 로그 전용 publisher 로 대체한다.
func newFeedbackPublisher(ctx context.Context, cfg config.KafkaConfig) eventbus.Publisher {
	if cfg.BootstrapServers == "" {
		return eventbus.LogPublisher{}
	}
	topic := eventbus.TopicOrDefault(cfg.FeedbackTopic, eventbus.TopicChatFeedback)
	ensureCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := eventbus.EnsureTopics(ensureCtx, cfg.BootstrapServers, 1, topic); err != nil {
		logger.WarnWithFields("kafka topic ensure failed", logger.Fields{"topic": topic.Base(), "error": err.Error()})
	}
	bus, err := eventbus.NewKafkaEventBus(cfg.BootstrapServers)
	if err != nil {
		logger.ErrorWithFields("kafka unavailable, feedback events are logged only", logger.Fields{"error": err.Error()})
		return eventbus.LogPublisher{}
	}
	return bus
}
