package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewGatewayClient_MissingURL(t *testing.T) {
	if _, err := NewGatewayClient("  "); err != ErrMissingGatewayURL {
		t.Fatalf("expected ErrMissingGatewayURL, got %v", err)
	}
}

func TestNewGatewayClient_TimeoutFromEnv(t *testing.T) {
	t.Setenv("GATEWAY_TIMEOUT_SECONDS", "3")

	client, err := NewGatewayClient("http://gateway.example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.httpClient.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %v", client.httpClient.Timeout)
	}
}

func TestGatewayClient_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Fatalf("unexpected content type %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("form parse failed: %v", err)
		}
		if r.PostForm.Get("request") != "preauthorization" || r.PostForm.Get("amount") != "2500" {
			t.Fatalf("unexpected form: %v", r.PostForm)
		}
		w.Write([]byte("status=APPROVED\ntxid=GW-42\n"))
	}))
	defer server.Close()

	client, err := NewGatewayClient(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	response, err := client.Send(context.Background(), map[string]string{
		"request": "preauthorization",
		"amount":  "2500",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response["status"] != "APPROVED" || response["txid"] != "GW-42" {
		t.Fatalf("unexpected response: %v", response)
	}
}

func TestGatewayClient_Send_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewGatewayClient(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.Send(context.Background(), map[string]string{}); err == nil {
		t.Fatalf("expected error for http 502")
	}
}

func TestGatewayClient_Send_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client, err := NewGatewayClient(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.Send(context.Background(), map[string]string{}); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestParseGatewayResponse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		parsed, err := parseGatewayResponse("status=REDIRECT\r\ntxid=GW-7\nredirecturl=https://gateway.example/checkout\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed["status"] != "REDIRECT" || parsed["redirecturl"] != "https://gateway.example/checkout" {
			t.Fatalf("unexpected map: %v", parsed)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		if _, err := parseGatewayResponse(""); err == nil {
			t.Fatalf("expected error for empty body")
		}
	})

	t.Run("line without separator", func(t *testing.T) {
		if _, err := parseGatewayResponse("status=APPROVED\ngarbage\n"); err == nil {
			t.Fatalf("expected error for malformed line")
		}
	})

	t.Run("blank key", func(t *testing.T) {
		if _, err := parseGatewayResponse("=value\n"); err == nil {
			t.Fatalf("expected error for blank key")
		}
	})
}
