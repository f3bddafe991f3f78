package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

// GeminiAPIKeyEnv is read on every bridge call, never at startup.
const GeminiAPIKeyEnv = "GEMINI_API_KEY"

const (
	PromptHistoryLatest = "latest"
	PromptHistoryFull   = "full"
)

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Chat    ChatConfig    `yaml:"chat"`
	Quota   QuotaConfig   `yaml:"quota"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Kafka   KafkaConfig   `yaml:"kafka"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type GeminiConfig struct {
	ModelName string `yaml:"model_name"`
}

// ChatConfig 는 세션 상태 머신과 프롬프트 구성 방식을 정의한다.
type ChatConfig struct {
	// PromptHistory 가 "latest" 면 마지막 턴만 프롬프트에 넣고, "full" 이면 전체 턴을 보낸다.
	PromptHistory    string        `yaml:"prompt_history"`
	MaxConversations int           `yaml:"max_conversations"`
	SessionIdleTTL   time.Duration `yaml:"session_idle_ttl"`
}

// QuotaConfig 는 Gemini 호출에 대한 분당/일일 한도다. 0 이하면 제한 없음.
type QuotaConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	RequestsPerDay    int `yaml:"requests_per_day"`
}

// MongoConfig 는 AI 호출 로그 저장소 설정이다. URI 가 비어 있으면 기록하지 않는다.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// KafkaConfig 는 피드백 이벤트 발행 설정이다. BootstrapServers 가 비어 있으면 로그로만 남긴다.
type KafkaConfig struct {
	BootstrapServers string `yaml:"bootstrap_servers"`
	FeedbackTopic    string `yaml:"feedback_topic"`
}

var (
	mu     sync.Mutex
	config *AppConfig
)

// Defaults returns the configuration used for every key config.yaml leaves out.
func Defaults() AppConfig {
	return AppConfig{
		Logging: LoggingConfig{Level: "info"},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Gemini: GeminiConfig{ModelName: "gemini-1.5-flash"},
		Chat: ChatConfig{
			PromptHistory:    PromptHistoryLatest,
			MaxConversations: 10,
			SessionIdleTTL:   24 * time.Hour,
		},
		Mongo: MongoConfig{Database: "vbcapital"},
		Kafka: KafkaConfig{FeedbackTopic: "vb-capital-ai.chat.feedback"},
	}
}

// Load reads .env and config.yaml from dir. A missing config.yaml is not an error.
func Load(dir string) (AppConfig, error) {
	_ = godotenv.Load(filepath.Join(dir, ENV_FILE))

	c := Defaults()
	data, err := os.ReadFile(filepath.Join(dir, CONFIG_FILE))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return AppConfig{}, fmt.Errorf("read %s: %w", CONFIG_FILE, err)
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return AppConfig{}, fmt.Errorf("parse %s: %w", CONFIG_FILE, err)
		}
	}

	applyEnv(&c)
	if err := c.Validate(); err != nil {
		return AppConfig{}, err
	}
	return c, nil
}

func applyEnv(c *AppConfig) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); v != "" {
		c.Kafka.BootstrapServers = v
	}
}

func (c AppConfig) Validate() error {
	switch c.Chat.PromptHistory {
	case PromptHistoryLatest, PromptHistoryFull:
	default:
		return fmt.Errorf("chat.prompt_history must be %q or %q, got %q", PromptHistoryLatest, PromptHistoryFull, c.Chat.PromptHistory)
	}
	if c.Chat.MaxConversations <= 0 {
		return fmt.Errorf("chat.max_conversations must be positive, got %d", c.Chat.MaxConversations)
	}
	if c.Gemini.ModelName == "" {
		return errors.New("gemini.model_name is required")
	}
	return nil
}

func InitApp() {
	c, err := Load(GetBasePath())
	if err != nil {
		panic(err)
	}
	mu.Lock()
	config = &c
	mu.Unlock()
}

func GetConfig() AppConfig {
	mu.Lock()
	loaded := config != nil
	mu.Unlock()
	if !loaded {
		InitApp()
	}

	mu.Lock()
	defer mu.Unlock()
	return *config
}

// GetBasePath walks up from the working directory to the first directory holding config.yaml.
func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd
}
