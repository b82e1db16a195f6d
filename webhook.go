package neutronpay

import (
	"context"
	"net/http"
	"net/url"
)

const webhookPath = "/api/v2/webhook"

// ListWebhooks returns the account's registered webhooks.
func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	var out []Webhook
	if err := c.Do(ctx, http.MethodGet, webhookPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWebhook registers a webhook for the given event types.
func (c *Client) CreateWebhook(ctx context.Context, webhookURL string, eventTypes []string) (*Webhook, error) {
	body := struct {
		URL        string   `json:"url"`
		EventTypes []string `json:"eventTypes,omitempty"`
	}{URL: webhookURL, EventTypes: eventTypes}
	var out Webhook
	if err := c.Do(ctx, http.MethodPost, webhookPath, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWebhook removes a webhook subscription.
func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, webhookPath+"/"+url.PathEscape(id), nil, nil)
}
