package notify

import (
	"context"
	"net/http"
	"time"
)

// DiscordSender delivers alerts via a Discord webhook.
type DiscordSender struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordSender creates a DiscordSender for the given webhook URL.
func NewDiscordSender(webhookURL string) *DiscordSender {
	return &DiscordSender{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the text as the webhook message content. Discord replies with
// 204 No Content on success.
func (d *DiscordSender) Send(ctx context.Context, text string) error {
	payload := map[string]string{"content": text}
	return postJSON(ctx, d.client, d.Name(), d.webhookURL, payload)
}

func (d *DiscordSender) Name() string { return "discord" }
