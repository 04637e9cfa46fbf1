package navbar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/FACorreiaa/visiventur/internal/app/models"
)

// BeaconClient posts currency preferences to the preference endpoint over HTTP.
type BeaconClient struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewBeaconClient targets endpoint, e.g. https://host/api/user/preferences.
// A nil client gets an otel-instrumented default.
func NewBeaconClient(endpoint string, client *http.Client) *BeaconClient {
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &BeaconClient{endpoint: endpoint, client: client}
}

// WithToken returns a copy that authenticates as the holder of token.
func (b *BeaconClient) WithToken(token string) *BeaconClient {
	cp := *b
	cp.token = token
	return &cp
}

func (b *BeaconClient) WriteCurrency(ctx context.Context, _ string, currency models.Currency) error {
	body, err := json.Marshal(map[string]string{"currency": string(currency)})
	if err != nil {
		return fmt.Errorf("encode preference: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build preference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("send preference: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("preference endpoint returned %d", resp.StatusCode)
	}
	return nil
}
