package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "")

	c, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
	assert.Equal(t, "gemini-1.5-flash", c.Gemini.ModelName)
	assert.Equal(t, PromptHistoryLatest, c.Chat.PromptHistory)
	assert.Equal(t, 10, c.Chat.MaxConversations)
}

func TestLoadMergesYAMLOverDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PORT", "")
	dir := t.TempDir()
	writeFile(t, dir, CONFIG_FILE, `
logging:
  level: debug
chat:
  prompt_history: full
  session_idle_ttl: 30m
quota:
  requests_per_day: 50
`)

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, PromptHistoryFull, c.Chat.PromptHistory)
	assert.Equal(t, 30*time.Minute, c.Chat.SessionIdleTTL)
	assert.Equal(t, 50, c.Quota.RequestsPerDay)
	// untouched keys keep their defaults
	assert.Equal(t, 10, c.Chat.MaxConversations)
	assert.Equal(t, ":8080", c.Server.Addr)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ENV_FILE, "KAFKA_BOOTSTRAP_SERVERS=broker:9092\n")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_URI", "mongodb://example:27017")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "")
	os.Unsetenv("KAFKA_BOOTSTRAP_SERVERS")

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", c.Logging.Level)
	assert.Equal(t, ":9090", c.Server.Addr)
	assert.Equal(t, "mongodb://example:27017", c.Mongo.URI)
	assert.Equal(t, "broker:9092", c.Kafka.BootstrapServers)
}

func TestLoadRejectsUnknownPromptHistory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, CONFIG_FILE, "chat:\n  prompt_history: everything\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt_history")
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, CONFIG_FILE, "chat: [unterminated\n")

	_, err := Load(dir)
	require.Error(t, err)
}
