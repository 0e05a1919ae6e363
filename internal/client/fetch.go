package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"livegate/internal/domain"
)

// TokenFetcher performs one credential fetch attempt. Retry scheduling
// lives in the bootstrap state machine, not here.
type TokenFetcher interface {
	FetchToken(ctx context.Context) (string, error)
}

// HTTPFetcher fetches credentials from the broker's query-style
// endpoint, which returns the token as a bare string body.
type HTTPFetcher struct {
	Client    *http.Client
	BrokerURL string
	Room      domain.RoomName
	Identity  domain.Identity
	Publisher bool
}

func (f *HTTPFetcher) FetchToken(ctx context.Context) (string, error) {
	q := url.Values{}
	q.Set("roomName", string(f.Room))
	q.Set("identity", string(f.Identity))
	q.Set("isPublisher", strconv.FormatBool(f.Publisher))
	endpoint := f.BrokerURL + "/getToken?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	httpClient := f.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, body)
	}
	return string(body), nil
}
