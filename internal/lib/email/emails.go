package email

import (
	"context"

	"github.com/deppfellow/vecta-backend/internal/model"
)

const contactSubjectPrefix = "【お問い合わせ】"

// ContactNotificationData feeds the contact_notification templates.
// Phone and Company are empty when the submitter left them out.
type ContactNotificationData struct {
	Name       string
	Email      string
	Phone      string
	Company    string
	Subject    string
	Message    string
	ReceivedAt string
}

// SendContactNotification tells the site owner about a new contact.
// Replies go straight to the submitter.
func (c *Client) SendContactNotification(ctx context.Context, contact *model.Contact) error {
	data := ContactNotificationData{
		Name:       contact.Name,
		Email:      contact.Email,
		Subject:    contact.Subject,
		Message:    contact.Message,
		ReceivedAt: c.formatTime(contact.CreatedAt),
	}
	if contact.Phone != nil {
		data.Phone = *contact.Phone
	}
	if contact.Company != nil {
		data.Company = *contact.Company
	}

	return c.Send(ctx, Message{
		Subject:  contactSubjectPrefix + contact.Subject,
		ReplyTo:  contact.Email,
		Template: TemplateContactNotification,
		Data:     data,
	})
}
