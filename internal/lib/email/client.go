// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and renders
// bodies from templates embedded in the binary.
package email

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/deppfellow/vecta-backend/internal/config"
)

// Sender is the part of the Resend API the client uses.
// *resend.Client's Emails service satisfies it.
type Sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client wraps the Resend client and a logger.
type Client struct {
	sender   Sender
	logger   *zerolog.Logger
	from     string
	to       []string
	location *time.Location
}

// Message is one outgoing email.
type Message struct {
	Subject  string
	ReplyTo  string
	Template Template
	Data     any
}

// NewClient creates an email Client.
//
// Without a Resend API key (or sender/recipient) the client is disabled and
// Send only logs that it skipped.
func NewClient(cfg *config.Config, logger *zerolog.Logger) (*Client, error) {
	var sender Sender
	if cfg.Email.Enabled() {
		sender = resend.NewClient(cfg.Email.ResendAPIKey).Emails
	}
	return NewClientWithSender(sender, cfg.Email, logger)
}

// NewClientWithSender creates a Client around an arbitrary Sender.
func NewClientWithSender(sender Sender, cfg config.EmailConfig, logger *zerolog.Logger) (*Client, error) {
	tz := cfg.Timezone
	if tz == "" {
		tz = config.DefaultTimezone
	}
	location, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid email timezone %q: %w", tz, err)
	}

	fromName := cfg.FromName
	if fromName == "" {
		fromName = config.DefaultFromName
	}

	c := &Client{
		sender:   sender,
		logger:   logger,
		from:     fmt.Sprintf("%s <%s>", fromName, cfg.From),
		location: location,
	}
	if cfg.To != "" {
		c.to = []string{cfg.To}
	}

	return c, nil
}

// Enabled reports whether Send actually talks to the provider.
func (c *Client) Enabled() bool {
	return c.sender != nil && len(c.to) > 0
}

// Send renders msg and submits it to the provider in a single attempt.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if !c.Enabled() {
		c.logger.Debug().
			Str("template", string(msg.Template)).
			Msg("email disabled, skipping send")
		return nil
	}

	html, text, err := render(msg.Template, msg.Data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      c.to,
		Subject: msg.Subject,
		ReplyTo: msg.ReplyTo,
		Html:    html,
		Text:    text,
	}

	resp, err := c.sender.SendWithContext(ctx, params)
	if err != nil {
		return errors.Wrapf(err, "failed to send email %s", msg.Template)
	}

	event := c.logger.Info().Str("template", string(msg.Template))
	if resp != nil {
		event = event.Str("email_id", resp.Id)
	}
	event.Msg("email sent")

	return nil
}

// formatTime renders t the way timestamps appear in email bodies.
func (c *Client) formatTime(t time.Time) string {
	return t.In(c.location).Format("2006/01/02 15:04")
}
