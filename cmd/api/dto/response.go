package dto

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
type ErrorResponseDTO struct {
	Error   string `json:"error" example:"Error processing your request"`
	Details string `json:"details,omitempty" example:"googleapi: Error 503: The model is overloaded."`
	Code    string `json:"code,omitempty" example:"upstream_error"`
}

// MessageResponseDTO는 단순 메시지 응답 형식을 통일하기 위한 DTO이다.
type MessageResponseDTO struct {
	Message string `json:"message" example:"deleted"`
}

type HealthResponseDTO struct {
	Status string `json:"status" example:"ok"`
}
