package eventbus

// 전역 토픽 선언. config.yaml 의 kafka.feedback_topic 이 비어 있으면 이 이름을 쓴다.
var (
	TopicChatFeedback = NewTopic("vb-capital-ai.chat.feedback")
)

// TopicOrDefault returns the configured topic name, falling back to def.
func TopicOrDefault(name string, def Topic) Topic {
	if name == "" {
		return def
	}
	return NewTopic(name)
}
