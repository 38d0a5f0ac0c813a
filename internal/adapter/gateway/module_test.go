package gateway

import (
	"testing"

	"github.com/polkiloo/quizwallet/internal/config"
)

func TestNewClientUsesEnvironmentURL(t *testing.T) {
	cfg := &config.Config{
		PaymentEnvironment:    config.PaymentEnvironmentProd,
		PaymentGatewayTestURL: "http://test.example.com",
		PaymentGatewayProdURL: "https://prod.example.com",
	}
	client, err := newClient(clientParams{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	httpClient, ok := client.(*HTTPClient)
	if !ok {
		t.Fatalf("expected *HTTPClient, got %T", client)
	}
	if httpClient.baseURL.String() != "https://prod.example.com" {
		t.Fatalf("expected prod url, got %s", httpClient.baseURL)
	}

	cfg.PaymentGatewayProdURL = "relative/path"
	if _, err := newClient(clientParams{Config: cfg, Logger: testLogger()}); err == nil {
		t.Fatal("expected error for relative url")
	}
}
