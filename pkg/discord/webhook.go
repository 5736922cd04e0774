package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const defaultAPIBase = "https://discord.com/api"

// WebhookFile is a file attachment for a webhook message.
type WebhookFile struct {
	Name   string
	Reader io.Reader
}

// WebhookPayload is the body of an outbound webhook message.
type WebhookPayload struct {
	Content string                   `json:"content,omitempty"`
	TTS     bool                     `json:"tts,omitempty"`
	Embeds  []map[string]interface{} `json:"embeds,omitempty"`
	Flags   int                      `json:"flags,omitempty"`

	Files []WebhookFile `json:"-"`
}

// WebhookClient sends follow-up messages over an interaction's webhook
// channel. One client is bound to a single application id and token.
type WebhookClient struct {
	httpClient    *http.Client
	applicationID string
	token         string
	url           string
}

// WebhookOption configures a WebhookClient.
type WebhookOption func(*WebhookClient)

// WithAPIBase overrides the platform API base URL.
func WithAPIBase(base string) WebhookOption {
	return func(c *WebhookClient) {
		c.url = fmt.Sprintf("%s/webhooks/%s/%s", base, c.applicationID, c.token)
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) WebhookOption {
	return func(c *WebhookClient) {
		c.httpClient = client
	}
}

// NewWebhookClient creates a webhook client for one interaction.
func NewWebhookClient(applicationID, token string, opts ...WebhookOption) *WebhookClient {
	c := &WebhookClient{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		applicationID: applicationID,
		token:         token,
		url:           fmt.Sprintf("%s/webhooks/%s/%s", defaultAPIBase, applicationID, token),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// URL returns the webhook endpoint URL.
func (c *WebhookClient) URL() string {
	return c.url
}

// Send posts a message to the webhook endpoint and returns the created
// message. Payloads with files are sent as multipart form data with
// the JSON body under the payload_json field.
func (c *WebhookClient) Send(ctx context.Context, payload *WebhookPayload) (*Message, error) {
	var (
		body        io.Reader
		contentType string
		err         error
	)

	if len(payload.Files) > 0 {
		body, contentType, err = encodeMultipart(payload)
	} else {
		var data []byte
		data, err = json.Marshal(payload)
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	if err != nil {
		return nil, fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"?wait=true", body)
	if err != nil {
		return nil, fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending webhook message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("webhook send failed: status %d: %s", resp.StatusCode, data)
	}

	var msgData MessageData
	if err := json.NewDecoder(resp.Body).Decode(&msgData); err != nil {
		return nil, fmt.Errorf("decoding webhook response: %w", err)
	}

	return NewMessage(&msgData, ""), nil
}

func encodeMultipart(payload *WebhookPayload) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, file := range payload.Files {
		part, err := w.CreateFormFile(file.Name, file.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return nil, "", err
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, "", err
	}
	if err := w.WriteField("payload_json", string(data)); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf, w.FormDataContentType(), nil
}
