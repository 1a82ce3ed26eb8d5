package dto

type RecordingSessionResponse struct {
	SessionID      string `json:"session_id" example:"rec_abc123"`
	ConversationID string `json:"conversation_id" example:"conv_abc123"`
	State          string `json:"state" example:"recording"`
	QueueStatus    string `json:"queue_status" example:"processing"`
	QueueCount     int    `json:"queue_count" example:"2"`
	StartedAt      string `json:"started_at" example:"2024-01-15T10:30:00Z"`
}

type RecordingListResponse struct {
	Total    int                        `json:"total"`
	Sessions []RecordingSessionResponse `json:"sessions"`
}

type QueueStatusResponse struct {
	Status string `json:"status" example:"queued"`
	Count  int    `json:"count" example:"2"`
}
