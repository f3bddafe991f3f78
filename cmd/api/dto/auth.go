package dto

type SignInRequestDTO struct {
	UserID   string `json:"user_id" example:"demo"`
	Password string `json:"password" example:"demo"`
}

type SignInResponseDTO struct {
	Message string `json:"message" example:"Sign in successful! Redirecting to chat..."`
	UserID  string `json:"user_id" example:"demo"`
}
