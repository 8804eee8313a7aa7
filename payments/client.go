// Package payments talks to the hosted payment gateway. The gateway is a
// black box reached over HTTP; this client only creates payment intents.
package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Intent is the slice of the gateway response the frontend needs.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// IntentCreator is what the payment handler depends on.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (*Intent, error)
}

type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetAuthToken(apiKey).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		logger:     logger,
	}
}

// CreateIntent asks the gateway for a payment intent. Each call carries a
// fresh idempotency key so gateway-side retries cannot double-charge.
func (c *Client) CreateIntent(ctx context.Context, amountCents int64, currency string) (*Intent, error) {
	var intent Intent

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetFormData(map[string]string{
			"amount":               fmt.Sprintf("%d", amountCents),
			"currency":             currency,
			"payment_method_types": "card",
		}).
		SetResult(&intent).
		Post("/v1/payment_intents")

	if err != nil {
		return nil, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("payment intent rejected",
			zap.Int("status", resp.StatusCode()),
			zap.Int64("amount", amountCents),
		)
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode())
	}

	return &intent, nil
}
