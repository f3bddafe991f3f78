package dto

import "vb-capital-ai/models"

// SessionDTO 는 서버 측 Chat Client 세션 상태다.
type SessionDTO struct {
	ID                   string                `json:"id"`
	State                string                `json:"state" example:"idle"`
	Sending              bool                  `json:"sending"`
	Turns                []models.Turn         `json:"turns"`
	Conversations        []models.Conversation `json:"conversations"`
	ActiveConversationID string                `json:"active_conversation_id,omitempty"`
}

type SubmitMessageRequestDTO struct {
	Content string `json:"content" binding:"required" example:"What sectors does VB Capital invest in?"`
}

// SubmitMessageResponseDTO 는 한 번의 주고받기 결과다. 실패한 경우 reply 는 사과 문구다.
type SubmitMessageResponseDTO struct {
	UserTurn            models.Turn          `json:"user_turn"`
	Reply               models.Turn          `json:"reply"`
	Failed              bool                 `json:"failed"`
	Error               *ErrorResponseDTO    `json:"error,omitempty"`
	Conversation        *models.Conversation `json:"conversation,omitempty"`
	ConversationCreated bool                 `json:"conversation_created"`
}

type SelectConversationResponseDTO struct {
	Selected bool       `json:"selected"`
	Session  SessionDTO `json:"session"`
}

type SuggestionsResponseDTO struct {
	Suggestions []string `json:"suggestions"`
}
