package voyage_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voice-assistant/pkg/voyage"
)

func TestVoyageClient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-voyage-key" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Provided API key is invalid."}`))
			return
		}

		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Model != "custom-model" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if len(req.Input) > 0 && req.Input[0] == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		// Out of order on purpose.
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"data": [
				{"embedding": [0.4, 0.5], "index": 1},
				{"embedding": [0.1, 0.2], "index": 0}
			]
		}`))
	}))
	defer ts.Close()

	client, err := voyage.New(voyage.Config{APIKey: "test-voyage-key", BaseURL: ts.URL + "/", Model: "custom-model"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("Success Flow", func(t *testing.T) {
		emb, err := client.Embed(context.Background(), []string{"first", "second"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(emb) != 2 {
			t.Fatalf("expected 2 embeddings, got %d", len(emb))
		}
		if emb[0][0] != 0.1 || emb[1][0] != 0.4 {
			t.Errorf("embeddings not ordered by index: %v", emb)
		}
	})

	t.Run("Count Mismatch", func(t *testing.T) {
		if _, err := client.Embed(context.Background(), []string{"only one"}); err == nil {
			t.Fatal("expected error on embedding count mismatch")
		}
	})

	t.Run("Server Error Flow", func(t *testing.T) {
		if _, err := client.Embed(context.Background(), []string{"cause_500"}); err == nil {
			t.Fatalf("expected error from 500 response")
		}
	})

	t.Run("Unauthorized Error Flow", func(t *testing.T) {
		badClient, _ := voyage.New(voyage.Config{APIKey: "bad-key", BaseURL: ts.URL})
		_, err := badClient.Embed(context.Background(), []string{"Hello world"})
		if err == nil || !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "invalid") {
			t.Fatalf("expected 401 error with detail, got %v", err)
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		if _, err := client.Embed(context.Background(), nil); err == nil {
			t.Fatal("expected error for empty input")
		}
	})
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := voyage.New(voyage.Config{}); err == nil {
		t.Fatal("expected error without API key")
	}
}
