// Package fetch performs the network retrieval of provider payloads. It is
// the only I/O boundary in the ingestion pipeline, so deterministic tests
// mock exactly this.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/umayucar/search-engine/internal/domain"
)

// DefaultTimeout bounds a single provider fetch.
const DefaultTimeout = 30 * time.Second

// HTTPFetcher retrieves raw provider payloads with a bounded timeout. No
// retries are performed here; retry policy, if wanted, belongs to the
// caller's configuration.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch performs a single blocking GET against the endpoint. Any transport
// failure or non-200 status yields a TransportError.
func (f *HTTPFetcher) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json, application/xml;q=0.9, */*;q=0.8")
	req.Header.Set("User-Agent", "SearchEngine/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.TransportError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}

	return body, nil
}
