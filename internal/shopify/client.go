package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"hk-storefront/internal/config"
	"hk-storefront/internal/domain"
)

const maxResponseBytes = 4 << 20

// Client issues GraphQL requests to the Storefront API. It is stateless: no
// caching, no session, one POST per call. A 503 from the backend is retried
// with exponential backoff; everything else fails on the first attempt.
type Client struct {
	endpoint string
	token    string
	httpc    *http.Client
	breaker  *gobreaker.CircuitBreaker[[]byte]
	backoff  []time.Duration
	logger   *log.Logger
}

// NewClient builds a Client for the configured storefront.
func NewClient(cfg config.Shopify, logger *log.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "shopify-storefront",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Printf("breaker %s: %s -> %s", name, from, to)
		},
	})
	return &Client{
		endpoint: fmt.Sprintf("https://%s/api/%s/graphql.json", cfg.Domain, cfg.APIVersion),
		token:    cfg.Token,
		httpc:    &http.Client{Timeout: 15 * time.Second},
		breaker:  breaker,
		backoff:  []time.Duration{time.Second, 2 * time.Second, 4 * time.Second},
		logger:   logger,
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// transientError marks backend unavailability worth retrying.
type transientError struct {
	status int
}

func (e *transientError) Error() string {
	return fmt.Sprintf("storefront api status %d", e.status)
}

func (e *transientError) Unwrap() error {
	return domain.ErrRemoteUnavailable
}

// Do executes a GraphQL document and decodes the response data into out.
// GraphQL-level errors are aggregated into a single non-retryable error.
func (c *Client) Do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}

	var body []byte
	for attempt := 0; ; attempt++ {
		body, err = c.post(ctx, payload)
		if err == nil {
			break
		}
		var transient *transientError
		if !errors.As(err, &transient) || attempt >= len(c.backoff) {
			return err
		}
		c.logger.Printf("storefront api 503, retrying in %s (attempt %d)", c.backoff[attempt], attempt+1)
		select {
		case <-time.After(c.backoff[attempt]):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	var resp graphqlResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode storefront response: %w", err)
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, gqlErr := range resp.Errors {
			msgs = append(msgs, gqlErr.Message)
		}
		return fmt.Errorf("storefront api: %s", strings.Join(msgs, "; "))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(resp.Data, out)
}

func (c *Client) post(ctx context.Context, payload []byte) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusServiceUnavailable {
			return nil, &transientError{status: resp.StatusCode}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("storefront api status %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
			return nil, fmt.Errorf("unexpected content type %q", ct)
		}
		return raw, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	return body, err
}
