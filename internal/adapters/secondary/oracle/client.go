package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"storage-price-estimator/internal/config"
	"storage-price-estimator/internal/core/domain"
	"storage-price-estimator/internal/metrics"
)

const name = "remote"

// Client asks a remote price oracle for storage prices. Each attempt has its
// own timeout; server errors and transport failures are retried.
type Client struct {
	baseURL  string
	client   *http.Client
	timeout  time.Duration
	attempts uint
	delay    time.Duration
}

type priceRequest struct {
	Size                int64           `json:"size"`
	IsPermanent         bool            `json:"isPermanent"`
	BasePrice           int64           `json:"basePrice"`
	BytePrice           int64           `json:"bytePrice"`
	PermanentMultiplier decimal.Decimal `json:"permanentMultiplier"`
}

type priceResponse struct {
	Price *decimal.Decimal `json:"price"`
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("oracle responded %d: %s", e.code, e.body)
}

func NewClient(cfg *config.OracleConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, domain.ErrInvalidOracleURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.URL, "/"),
		client:   &http.Client{},
		timeout:  timeout,
		attempts: attempts,
		delay:    cfg.RetryDelay,
	}, nil
}

func (c *Client) Name() string {
	return name
}

func (c *Client) GetPrice(ctx context.Context, req domain.PriceRequest) (decimal.Decimal, error) {
	body, err := json.Marshal(priceRequest{
		Size:                req.SizeBytes,
		IsPermanent:         req.IsPermanent,
		BasePrice:           req.BasePrice,
		BytePrice:           req.BytePrice,
		PermanentMultiplier: req.PermanentMultiplier,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("marshal price request: %w", err)
	}

	var price decimal.Decimal
	err = retry.Do(func() error {
		p, err := c.fetch(ctx, body)
		if err != nil {
			return err
		}
		price = p
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			metrics.OracleCall(name, "retry")
			log.WithError(err).WithField("attempt", n+1).Warn("price oracle call failed, retrying")
		}),
	)
	if err != nil {
		metrics.OracleCall(name, "error")
		return decimal.Zero, fmt.Errorf("%w: %w", domain.ErrOracleUnavailable, err)
	}

	metrics.OracleCall(name, "success")
	return price, nil
}

func (c *Client) fetch(ctx context.Context, body []byte) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + "/price"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return decimal.Zero, fmt.Errorf("create oracle request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	log.WithField("url", url).Debug("requesting price from oracle")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return decimal.Zero, fmt.Errorf("oracle request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return decimal.Zero, &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(msg))}
	}

	var out priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return decimal.Zero, fmt.Errorf("decode oracle response: %w", err)
	}
	if out.Price == nil {
		return decimal.Zero, errors.New("oracle response has no price")
	}
	return *out.Price, nil
}

// IsAvailable probes the oracle health endpoint.
func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError || se.code == http.StatusTooManyRequests
	}
	return !errors.Is(err, context.Canceled)
}
