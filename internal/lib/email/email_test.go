package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/vecta-backend/internal/config"
	"github.com/deppfellow/vecta-backend/internal/model"
)

type fakeSender struct {
	requests []*resend.SendEmailRequest
	err      error
}

func (f *fakeSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.requests = append(f.requests, params)
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		ResendAPIKey: "re_test",
		From:         "info@vecta.example.com",
		To:           "owner@vecta.example.com",
	}
}

func newTestClient(t *testing.T, sender Sender) *Client {
	t.Helper()

	logger := zerolog.Nop()
	c, err := NewClientWithSender(sender, testEmailConfig(), &logger)
	require.NoError(t, err)
	return c
}

func TestSendContactNotification(t *testing.T) {
	sender := &fakeSender{}
	client := newTestClient(t, sender)

	company := "Example株式会社"
	contact := &model.Contact{
		ID:        "c-1",
		Name:      "Taro",
		Email:     "taro@example.com",
		Company:   &company,
		Subject:   "Pricing",
		Message:   "Tell me <more>",
		Status:    model.ContactStatusNew,
		CreatedAt: time.Date(2025, 4, 1, 1, 30, 0, 0, time.UTC),
	}

	require.NoError(t, client.SendContactNotification(context.Background(), contact))
	require.Len(t, sender.requests, 1)

	req := sender.requests[0]
	assert.Equal(t, "Vectaお知らせ <info@vecta.example.com>", req.From)
	assert.Equal(t, []string{"owner@vecta.example.com"}, req.To)
	assert.Equal(t, "【お問い合わせ】Pricing", req.Subject)
	assert.Equal(t, "taro@example.com", req.ReplyTo)

	// 01:30 UTC is 10:30 in Tokyo.
	assert.Contains(t, req.Text, "2025/04/01 10:30")
	assert.Contains(t, req.Text, "■お名前\nTaro")
	assert.Contains(t, req.Text, "Tell me <more>")
	assert.Contains(t, req.Text, "■会社名\nExample株式会社")
	assert.NotContains(t, req.Text, "■電話番号")

	assert.Contains(t, req.Html, "Tell me &lt;more&gt;")
	assert.Contains(t, req.Html, "2025/04/01 10:30")
	assert.Contains(t, req.Html, "会社名")
	assert.NotContains(t, req.Html, "電話番号")
}

func TestSendReturnsProviderError(t *testing.T) {
	sender := &fakeSender{err: errors.New("rate limited")}
	client := newTestClient(t, sender)

	err := client.SendContactNotification(context.Background(), &model.Contact{
		Name:    "Taro",
		Email:   "taro@example.com",
		Subject: "S",
		Message: "M",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestDisabledClientSkipsSend(t *testing.T) {
	logger := zerolog.Nop()
	client, err := NewClientWithSender(nil, config.EmailConfig{}, &logger)
	require.NoError(t, err)

	assert.False(t, client.Enabled())
	assert.NoError(t, client.SendContactNotification(context.Background(), &model.Contact{}))
}

func TestNewClientRejectsUnknownTimezone(t *testing.T) {
	cfg := testEmailConfig()
	cfg.Timezone = "Mars/Olympus"

	logger := zerolog.Nop()
	_, err := NewClientWithSender(&fakeSender{}, cfg, &logger)
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	html, text, err := Preview(TemplateContactNotification)
	require.NoError(t, err)

	assert.Contains(t, html, "山田 太郎")
	assert.Contains(t, text, "■お問い合わせ内容")
	assert.Contains(t, text, "■受信日時\n2025/04/01 10:30")
}
