// Package telegram is a minimal Bot API client covering the handful of
// methods the bot needs: long polling plus message sending and editing.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIHost = "https://api.telegram.org"

// Client is a minimal Telegram Bot API client.
type Client struct {
	base       string
	httpClient *http.Client
}

// NewClient creates a client for the given bot token. If apiHost is empty, it
// defaults to https://api.telegram.org. The HTTP timeout leaves headroom over
// the long-poll window.
func NewClient(token, apiHost string) *Client {
	if apiHost == "" {
		apiHost = defaultAPIHost
	}
	return &Client{
		base: apiHost + "/bot" + token,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// apiResponse is the Bot API envelope. Result is left raw so each method can
// decode its own shape.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
}

func (c *Client) post(ctx context.Context, method string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/"+method, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("unmarshal response (status %d): %w", resp.StatusCode, err)
	}
	if !envelope.OK {
		return fmt.Errorf("API error (code %d): %s", envelope.ErrorCode, envelope.Description)
	}

	if result != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("unmarshal result: %w", err)
		}
	}
	return nil
}

// GetMe returns the bot's own account, used to build share links.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var me User
	if err := c.post(ctx, "getMe", struct{}{}, &me); err != nil {
		return nil, fmt.Errorf("get me: %w", err)
	}
	return &me, nil
}

// GetUpdates long-polls for updates after offset. It blocks up to timeout
// seconds server-side; ctx cancellation aborts the poll.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, error) {
	body := getUpdatesRequest{
		Offset:         offset,
		Timeout:        timeout,
		AllowedUpdates: []string{"message", "callback_query"},
	}
	var updates []Update
	if err := c.post(ctx, "getUpdates", body, &updates); err != nil {
		return nil, fmt.Errorf("get updates: %w", err)
	}
	return updates, nil
}

// SendMessage sends a message and returns the sent message.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	var msg Message
	if err := c.post(ctx, "sendMessage", req, &msg); err != nil {
		return nil, fmt.Errorf("send message to %d: %w", req.ChatID, err)
	}
	return &msg, nil
}

// EditMessageText replaces the text (and keyboard) of an existing message.
func (c *Client) EditMessageText(ctx context.Context, req EditMessageTextRequest) error {
	if err := c.post(ctx, "editMessageText", req, nil); err != nil {
		return fmt.Errorf("edit message %d in %d: %w", req.MessageID, req.ChatID, err)
	}
	return nil
}

// EditMessageReplyMarkup replaces only the inline keyboard of a message.
func (c *Client) EditMessageReplyMarkup(ctx context.Context, req EditMessageReplyMarkupRequest) error {
	if err := c.post(ctx, "editMessageReplyMarkup", req, nil); err != nil {
		return fmt.Errorf("edit reply markup %d in %d: %w", req.MessageID, req.ChatID, err)
	}
	return nil
}

// AnswerCallbackQuery acknowledges a button press, optionally with a toast.
func (c *Client) AnswerCallbackQuery(ctx context.Context, req AnswerCallbackQueryRequest) error {
	if err := c.post(ctx, "answerCallbackQuery", req, nil); err != nil {
		return fmt.Errorf("answer callback query: %w", err)
	}
	return nil
}
