package dto

type CredentialResponse struct {
	Provider   string `json:"provider" example:"cloud_transcription"`
	MaskedKey  string `json:"masked_key" example:"sk-p…f3a9"`
	Configured bool   `json:"configured" example:"true"`
	UpdatedAt  string `json:"updated_at,omitempty" example:"2024-01-15T10:30:00Z"`
}

type SetCredentialRequest struct {
	Key string `json:"key" example:"sk-proj-abc123"`
}
