package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-token", "12345")
	client.apiBase = server.URL
	return client, server
}

func TestNotifySendsMessage(t *testing.T) {
	var got sendMessageRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottest-token/sendMessage" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(sendMessageResponse{OK: true})
	})

	if err := client.Notify("hello *world*"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ChatID != "12345" {
		t.Fatalf("chat_id = %q, want 12345", got.ChatID)
	}
	if got.Text != "hello *world*" {
		t.Fatalf("text = %q", got.Text)
	}
	if got.ParseMode != "Markdown" {
		t.Fatalf("parse_mode = %q", got.ParseMode)
	}
}

func TestNotifyAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(sendMessageResponse{OK: false, Description: "chat not found"})
	})

	if err := client.Notify("hello"); err == nil {
		t.Fatal("expected an error for a failed send")
	}
}

func TestNotifySkipsWhenUnconfigured(t *testing.T) {
	client := NewClient("", "")
	if err := client.Notify("hello"); err != nil {
		t.Fatalf("unconfigured client must skip, not fail: %v", err)
	}
}
