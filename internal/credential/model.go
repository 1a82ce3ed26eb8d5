package credential

import "time"

const ProviderCloudTranscription = "cloud_transcription"

// placeholders the mobile client ships in its template config; they never count
// as a configured key.
var placeholders = map[string]bool{
	"":                  true,
	"YOUR_API_KEY":      true,
	"your-api-key":      true,
	"sk-placeholder":    true,
	"CHANGE_ME":         true,
	"<INSERT_KEY_HERE>": true,
}

type Credential struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Provider  string    `gorm:"uniqueIndex;not null" json:"provider"`
	Value     string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsUsable reports whether the stored value is a real key rather than a placeholder.
func (c *Credential) IsUsable() bool {
	return !placeholders[c.Value]
}

// Masked returns the value with all but the first and last four characters hidden.
func (c *Credential) Masked() string {
	if len(c.Value) <= 8 {
		return "********"
	}
	return c.Value[:4] + "…" + c.Value[len(c.Value)-4:]
}
