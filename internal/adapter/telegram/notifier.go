// Package telegram sends notification messages through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Notifier delivers messages to a user's Telegram chat via the Bot API.
// A Notifier with an empty bot token is disabled and drops every message.
type Notifier struct {
	baseURL    string
	botToken   string
	httpClient *http.Client
	log        *slog.Logger
}

// NewNotifier creates a Notifier using the official Telegram Bot API endpoint.
func NewNotifier(botToken string, timeout time.Duration, logger *slog.Logger) *Notifier {
	return &Notifier{
		baseURL:    defaultBaseURL,
		botToken:   botToken,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "telegram"),
	}
}

// NewNotifierWithURL creates a Notifier with a custom base URL (for testing).
func NewNotifierWithURL(baseURL, botToken string, timeout time.Duration, logger *slog.Logger) *Notifier {
	return &Notifier{
		baseURL:    baseURL,
		botToken:   botToken,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "telegram"),
	}
}

// Enabled reports whether the notifier has a bot token configured.
func (n *Notifier) Enabled() bool {
	return n.botToken != ""
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage posts a text message to the given chat via the sendMessage
// Bot API method. A nil error means Telegram accepted the message.
func (n *Notifier) SendMessage(ctx context.Context, chatID, text string) error {
	if !n.Enabled() {
		n.log.DebugContext(ctx, "telegram notifications disabled, message dropped")
		return nil
	}

	payload, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("telegram: marshal payload: %w", err)
	}

	reqURL := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram: read body: %w", err)
	}

	var apiResp sendMessageResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("telegram: decode response (status %d): %w", resp.StatusCode, err)
	}

	if !apiResp.OK {
		return fmt.Errorf("telegram: sendMessage rejected (status %d): %s", resp.StatusCode, apiResp.Description)
	}

	n.log.DebugContext(ctx, "telegram message sent", slog.Int("status", resp.StatusCode))
	return nil
}
