package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voice-assistant/pkg/ollama"
)

func TestOllamaGenerate(t *testing.T) {
	var captured map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewDecoder(r.Body).Decode(&captured)
		if captured["prompt"] == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("model not loaded"))
			return
		}
		if captured["prompt"] == "garbage" {
			w.Write([]byte("not json"))
			return
		}
		w.Write([]byte(`{"model":"llama3.2:3b","response":"hello there","done":true,"prompt_eval_count":7,"eval_count":3}`))
	}))
	defer ts.Close()

	client, err := ollama.New(ollama.Config{BaseURL: ts.URL + "/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != ollama.DefaultModel {
		t.Errorf("expected default model, got %s", client.Model())
	}

	t.Run("Success", func(t *testing.T) {
		temp := 0.0
		resp, err := client.Generate(context.Background(), &ollama.GenerateRequest{
			Prompt:      "hi",
			System:      "be brief",
			Format:      ollama.FormatJSON,
			Temperature: &temp,
			NumPredict:  5,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text != "hello there" {
			t.Errorf("unexpected text %q", resp.Text)
		}
		if resp.Usage.TotalTokens != 10 {
			t.Errorf("expected 10 tokens, got %d", resp.Usage.TotalTokens)
		}
		if captured["stream"] != false {
			t.Errorf("expected stream=false, got %v", captured["stream"])
		}
		if captured["format"] != "json" || captured["system"] != "be brief" {
			t.Errorf("unexpected request body %v", captured)
		}
		opts, _ := captured["options"].(map[string]interface{})
		if opts == nil || opts["num_predict"] != float64(5) {
			t.Errorf("expected options with num_predict, got %v", captured["options"])
		}
		if _, ok := opts["temperature"]; !ok {
			t.Errorf("expected explicit zero temperature to be sent")
		}
	})

	t.Run("HTTP error", func(t *testing.T) {
		_, err := client.Generate(context.Background(), &ollama.GenerateRequest{Prompt: "cause_500"})
		if err == nil || !strings.Contains(err.Error(), "500") {
			t.Errorf("expected 500 error, got %v", err)
		}
	})

	t.Run("Malformed payload", func(t *testing.T) {
		if _, err := client.Generate(context.Background(), &ollama.GenerateRequest{Prompt: "garbage"}); err == nil {
			t.Error("expected decode error")
		}
	})

	t.Run("Nil request", func(t *testing.T) {
		if _, err := client.Generate(context.Background(), nil); err == nil {
			t.Error("expected error for nil request")
		}
	})
}

func TestOllamaEmbed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["prompt"] == "empty" {
			w.Write([]byte(`{"embedding":[]}`))
			return
		}
		if req["model"] != "nomic-embed-text" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"embedding":[0.1,0.2,0.3]}`))
	}))
	defer ts.Close()

	client, _ := ollama.New(ollama.Config{BaseURL: ts.URL})

	vec, err := client.Embed(context.Background(), "remember the milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("expected 3 dims, got %d", len(vec))
	}

	if _, err := client.Embed(context.Background(), "empty"); err == nil {
		t.Error("expected error for empty embedding")
	}
	if _, err := client.Embed(context.Background(), ""); err == nil {
		t.Error("expected error for empty text")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := ollama.Config{BaseURL: "localhost:11434"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for base URL without scheme")
	}
}
