package dto

import "vb-capital-ai/models"

type AILogsResponseDTO struct {
	RequestID string         `json:"request_id"`
	Logs      []models.AILog `json:"logs"`
}
