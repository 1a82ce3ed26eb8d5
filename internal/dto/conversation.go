package dto

type MessageResponse struct {
	ID              string  `json:"id" example:"msg_abc123"`
	Text            string  `json:"text" example:"remember to buy oat milk"`
	Source          string  `json:"source" example:"remote"`
	DurationSeconds float64 `json:"duration_seconds" example:"30"`
	Seq             int     `json:"seq" example:"3"`
	CreatedAt       string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

type ConversationResponse struct {
	ID           string `json:"id" example:"conv_abc123"`
	Title        string `json:"title" example:"Morning notes"`
	MessageCount int    `json:"message_count" example:"7"`
	CreatedAt    string `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt    string `json:"updated_at" example:"2024-01-15T10:34:10Z"`
}

type ConversationListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
}

type ConversationDetailResponse struct {
	Conversation ConversationResponse `json:"conversation"`
	Messages     []MessageResponse    `json:"messages"`
}

type RenameConversationRequest struct {
	Title string `json:"title" example:"Grocery run"`
}
