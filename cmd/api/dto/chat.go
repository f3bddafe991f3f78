package dto

import "vb-capital-ai/models"

// ChatTurnDTO 는 wire 형식의 턴이다. 화면용 timestamp 는 주고받지 않는다.
type ChatTurnDTO struct {
	Role    string `json:"role" binding:"required,oneof=user assistant" example:"user"`
	Content string `json:"content" example:"What sectors does VB Capital invest in?"`
}

// ChatRequestDTO 는 Bridge 요청 본문이다. 턴 순서는 그대로 유지된다.
type ChatRequestDTO struct {
	Messages []ChatTurnDTO `json:"messages" binding:"required,dive"`
}

type ChatResponseDTO struct {
	Role    string `json:"role" example:"assistant"`
	Content string `json:"content" example:"VB Capital focuses on **fintech** and **AI infrastructure**."`
}

func NewChatRequest(turns []models.Turn) ChatRequestDTO {
	msgs := make([]ChatTurnDTO, len(turns))
	for i, t := range turns {
		msgs[i] = ChatTurnDTO{Role: t.Role, Content: t.Content}
	}
	return ChatRequestDTO{Messages: msgs}
}

func (r ChatRequestDTO) Turns() []models.Turn {
	turns := make([]models.Turn, len(r.Messages))
	for i, m := range r.Messages {
		turns[i] = models.Turn{Role: m.Role, Content: m.Content}
	}
	return turns
}
