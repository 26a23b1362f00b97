package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/getUpdates") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req getUpdatesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Offset != 10 {
			t.Errorf("got offset %d, want 10", req.Offset)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"result": []map[string]any{
				{"update_id": 11, "message": map[string]any{
					"message_id": 1,
					"chat":       map[string]any{"id": 5, "type": "private"},
					"text":       "שלום",
				}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("token", srv.URL)
	updates, err := c.GetUpdates(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("GetUpdates: %v", err)
	}
	if len(updates) != 1 || updates[0].UpdateID != 11 {
		t.Fatalf("got %+v", updates)
	}
	if updates[0].Message == nil || updates[0].Message.Text != "שלום" {
		t.Errorf("got message %+v", updates[0].Message)
	}
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"ok":          false,
			"error_code":  400,
			"description": "Bad Request: chat not found",
		})
	}))
	defer srv.Close()

	c := NewClient("token", srv.URL)
	_, err := c.SendMessage(context.Background(), SendMessageRequest{ChatID: 1, Text: "hi"})
	if err == nil {
		t.Fatal("want error")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("got %v, want the API description", err)
	}
}

func TestClientTokenInPath(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"result": map[string]any{"id": 1, "is_bot": true, "first_name": "bot", "username": "testbot"},
		})
	}))
	defer srv.Close()

	c := NewClient("sekret", srv.URL)
	me, err := c.GetMe(context.Background())
	if err != nil {
		t.Fatalf("GetMe: %v", err)
	}
	if path != "/botsekret/getMe" {
		t.Errorf("got path %q", path)
	}
	if me.Username != "testbot" {
		t.Errorf("got %+v", me)
	}
}
