package dto

type FeedbackRequestDTO struct {
	Content   string `json:"content" binding:"required"`
	Feedback  string `json:"feedback" binding:"required" example:"helpful" enums:"helpful,not-helpful"`
	SessionID string `json:"session_id,omitempty"`
}

type FeedbackResponseDTO struct {
	EventID string `json:"event_id"`
}
