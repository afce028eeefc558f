package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/naveenspark/backoffice/pkg/domain"
)

// NotificationTemplateInput is the create/update payload for a template.
type NotificationTemplateInput struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Channel  string `json:"channel"`
	IsActive bool   `json:"isActive"`
}

// Notification audiences.
const (
	AudienceAll   = "all"
	AudienceUsers = "users"
)

// SendNotificationInput is the payload for a dashboard send. Either
// TemplateID or Title+Body must be set; UserIDs is required when
// Audience is AudienceUsers.
type SendNotificationInput struct {
	TemplateID string            `json:"templateId,omitempty"`
	Title      string            `json:"title,omitempty"`
	Body       string            `json:"body,omitempty"`
	Channel    string            `json:"channel"`
	Audience   string            `json:"audience"`
	UserIDs    []string          `json:"userIds,omitempty"`
	Data       map[string]string `json:"data,omitempty"`
}

// Validate checks the payload before it is sent.
func (in SendNotificationInput) Validate() error {
	if !domain.ValidChannel(in.Channel) {
		return fmt.Errorf("unknown channel %q", in.Channel)
	}
	if in.TemplateID == "" && (in.Title == "" || in.Body == "") {
		return errors.New("title and body are required without a template")
	}
	switch in.Audience {
	case AudienceAll:
	case AudienceUsers:
		if len(in.UserIDs) == 0 {
			return errors.New("at least one user id is required")
		}
	default:
		return fmt.Errorf("unknown audience %q", in.Audience)
	}
	return nil
}

// SendNotification dispatches a notification and returns the send record.
func (c *Client) SendNotification(ctx context.Context, in SendNotificationInput) (*domain.NotificationSend, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("client.SendNotification: %w", err)
	}
	var sent domain.NotificationSend
	if err := c.post(ctx, "/notifications/dashboard/send", in, &sent); err != nil {
		return nil, fmt.Errorf("client.SendNotification: %w", err)
	}
	return &sent, nil
}
