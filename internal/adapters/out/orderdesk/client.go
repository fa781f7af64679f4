// Package orderdesk talks to the remote order desk that prices, books and
// tracks orders. Client speaks its JSON HTTP API; MemoryDesk is a local
// stand-in with the same idempotency guarantees.
package orderdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"parcel/internal/core/domain/model/shipment"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
)

// IdempotencyKeyHeader carries the submission key on every mutating call.
const IdempotencyKeyHeader = "Idempotency-Key"

const (
	opQuote        = "quote"
	opCreate       = "create"
	opConfirmOrder = "confirmOrder"
	opUpdateStatus = "updateStatus"
)

// maxErrorBody bounds how much of a failing response is read.
const maxErrorBody = 64 << 10

type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// defaultTimeout bounds a call when the config names none.
const defaultTimeout = 10 * time.Second

// Client is the HTTP order desk gateway. Concurrent Create calls with the
// same idempotency key share one request.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger

	creates singleflight.Group
}

func NewClient(cfg ClientConfig, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errs.NewValueIsRequiredError("order desk base url")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("order desk base url", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errs.NewValueIsInvalidErrorWithCause("order desk base url",
			fmt.Errorf("unsupported scheme %q", base.Scheme))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		http:    httpClient,
		timeout: timeout,
		logger:  logger.With("component", "orderdesk"),
	}, nil
}

var (
	_ ports.OrderDesk     = (*Client)(nil)
	_ ports.StatusUpdater = (*Client)(nil)
)

func (c *Client) Quote(ctx context.Context, key string, intake shipment.Intake) (shipment.PricingBreakdown, error) {
	var resp quoteResponseJSON
	if err := c.call(ctx, opQuote, http.MethodPost, "/v1/quotes", key, toIntakeJSON(intake), &resp); err != nil {
		return shipment.PricingBreakdown{}, err
	}

	pricing, err := resp.toDomain()
	if err != nil {
		return shipment.PricingBreakdown{}, errs.NewRemoteOperationErrorWithCause(opQuote, "", err)
	}
	return pricing, nil
}

// Create books the order. The shared request runs detached from any single
// caller's cancellation and is bounded by the client timeout instead; a
// caller that gives up gets its own context error while the others still
// receive the result.
func (c *Client) Create(ctx context.Context, key string, intake shipment.Intake) (ports.CreatedOrder, error) {
	ch := c.creates.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		var resp createResponseJSON
		if err := c.call(callCtx, opCreate, http.MethodPost, "/v1/orders", key, toIntakeJSON(intake), &resp); err != nil {
			return ports.CreatedOrder{}, err
		}

		order, err := resp.toDomain()
		if err != nil {
			return ports.CreatedOrder{}, errs.NewRemoteOperationErrorWithCause(opCreate, "", err)
		}
		return order, nil
	})

	select {
	case <-ctx.Done():
		return ports.CreatedOrder{}, errs.NewRemoteOperationErrorWithCause(opCreate, "", ctx.Err())
	case res := <-ch:
		if res.Shared {
			c.logger.DebugContext(ctx, "Create shared with a concurrent call", "key", key)
		}
		if res.Err != nil {
			return ports.CreatedOrder{}, res.Err
		}
		return res.Val.(ports.CreatedOrder), nil
	}
}

func (c *Client) ConfirmOrder(ctx context.Context, key string, orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	path := "/v1/orders/" + url.PathEscape(orderID) + "/confirm"
	return c.call(ctx, opConfirmOrder, http.MethodPost, path, key, struct{}{}, nil)
}

func (c *Client) UpdateStatus(ctx context.Context, orderID string, payload shipment.Payload) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	path := "/v1/orders/" + url.PathEscape(orderID) + "/status"
	return c.call(ctx, opUpdateStatus, http.MethodPut, path, "", toStatusRequestJSON(payload), nil)
}

// call sends body as JSON and decodes a 2xx response into out when out is
// not nil. Failures come back as remote errors tagged with op.
func (c *Client) call(ctx context.Context, op, method, path, key string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Order desk unreachable", "operation", op, "error", err)
		return errs.NewRemoteOperationErrorWithCause(op, "", err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "Order desk responded",
		"operation", op, "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.remoteError(op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.NewRemoteOperationErrorWithCause(op, "", fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// remoteError turns a non-2xx response into a typed error. 400 and 422 with
// a readable body are rejections of the input; anything else is an
// operation failure whose message is kept only if the desk sent one.
func (c *Client) remoteError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorResponseJSON
	decodeErr := json.Unmarshal(raw, &body)
	statusErr := fmt.Errorf("HTTP %d", resp.StatusCode)

	switch {
	case (resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity) &&
		decodeErr == nil && (body.Message != "" || len(body.Errors) > 0):
		return errs.NewRemoteValidationError(op, body.Message, body.Errors)
	case decodeErr == nil:
		return errs.NewRemoteOperationErrorWithCause(op, body.Message, statusErr)
	default:
		return errs.NewRemoteOperationErrorWithCause(op, "", errors.Join(statusErr, decodeErr))
	}
}
