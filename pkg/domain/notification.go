package domain

import "time"

// Notification channels.
const (
	ChannelPush  = "push"
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// NotificationChannels is the cycle order used by channel pickers.
var NotificationChannels = []string{ChannelPush, ChannelEmail, ChannelSMS}

// NotificationTemplate is a reusable message body with {{placeholders}}.
type NotificationTemplate struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Channel   string    `json:"channel"`
	IsActive  bool      `json:"isActive"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NotificationSend is one dispatched notification batch.
type NotificationSend struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"templateId,omitempty"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Channel    string    `json:"channel"`
	Audience   string    `json:"audience"` // "all", "users", "segment"
	Recipients int       `json:"recipientCount"`
	Delivered  int       `json:"deliveredCount"`
	Failed     int       `json:"failedCount"`
	SentAt     time.Time `json:"sentAt"`
}

// ValidChannel returns true if ch is a known notification channel.
func ValidChannel(ch string) bool {
	for _, v := range NotificationChannels {
		if v == ch {
			return true
		}
	}
	return false
}
