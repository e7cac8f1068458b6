package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PiyawatK/SubTrack/internal/pkg/env"
)

const defaultAPIBase = "https://api.telegram.org"

// Client posts messages to a Telegram chat via the Bot API. Sends are
// best-effort side-channel traffic: callers log failures and move on.
type Client struct {
	token   string
	chatID  string
	apiBase string
	http    *http.Client
}

// NewClient creates a Telegram client for a bot token and target chat.
func NewClient(token, chatID string) *Client {
	return &Client{
		token:   token,
		chatID:  chatID,
		apiBase: defaultAPIBase,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientFromEnv builds a client from TG_BOT_TOKEN and TG_CHAT_ID.
// Missing configuration produces a client that skips sends instead of
// failing, so an unconfigured environment never breaks lifecycle writes.
func NewClientFromEnv() *Client {
	return NewClient(env.GetEnv("TG_BOT_TOKEN", ""), env.GetEnv("TG_CHAT_ID", ""))
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Notify sends a Markdown message to the configured chat.
func (c *Client) Notify(text string) error {
	if c.token == "" || c.chatID == "" {
		log.Print("telegram: TG_BOT_TOKEN or TG_CHAT_ID not set, skipping notification")
		return nil
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.token)
	resp, err := c.http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		body.Description = "unreadable response"
	}
	if resp.StatusCode != http.StatusOK || !body.OK {
		return fmt.Errorf("telegram send failed (%d): %s", resp.StatusCode, body.Description)
	}
	return nil
}
