package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/prebuy-ai/order-routing/internal/domain"
	"github.com/prebuy-ai/order-routing/internal/port"
	"go.uber.org/zap"
)

const (
	AddPath     = "/cart/add.js"
	ChangePath  = "/cart/change.js"
	AddFormPath = "/cart/add"

	RequestIDHeader = "X-Request-Id"
)

type cartClient struct {
	doer      port.HTTPDoer
	baseURL   string
	userAgent string
	logger    *zap.Logger
}

type Option func(*cartClient)

func WithUserAgent(ua string) Option {
	return func(c *cartClient) {
		c.userAgent = ua
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *cartClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewCart(doer port.HTTPDoer, baseURL string, opts ...Option) (port.CartClient, error) {
	if doer == nil {
		return nil, fmt.Errorf("doer is nil")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("baseURL[%s] is not absolute", baseURL)
	}

	c := &cartClient{
		doer:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *cartClient) AddItemWithLocation(ctx context.Context, variantID domain.VariantID, locationID domain.LocationID) (domain.AddedLines, error) {
	raw, body, err := c.postJSON(ctx, "add", AddPath, domain.NewAddRequest(variantID, locationID))
	if err != nil {
		return domain.AddedLines{}, err
	}

	return domain.AddedLines{
		Items: mapAddedToDomain(body),
		Raw:   raw,
	}, nil
}

func (c *cartClient) UpdateLineLocation(ctx context.Context, lineKey domain.LineKey, locationID domain.LocationID) (domain.Cart, error) {
	raw, body, err := c.postJSON(ctx, "change", ChangePath, domain.NewChangeRequest(lineKey, locationID))
	if err != nil {
		return domain.Cart{}, err
	}

	cart := mapCartToDomain(body)
	cart.Raw = raw

	return cart, nil
}

// postJSON sends body to path and returns the raw 2xx response with its
// generic decoding. A body that is not exactly one JSON value is a failure.
func (c *cartClient) postJSON(ctx context.Context, op, path string, body any) ([]byte, any, error) {
	endpoint := c.baseURL + path

	data, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	respBody, err := c.do(req, op)
	if err != nil {
		return nil, nil, err
	}

	if !json.Valid(respBody) {
		return nil, nil, c.fail(&TransportError{Op: op, Endpoint: endpoint, Err: errInvalidJSON, Body: truncateBody(respBody)})
	}

	var decoded any
	dec := json.NewDecoder(bytes.NewReader(respBody))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, nil, c.fail(&TransportError{Op: op, Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)})
	}

	return respBody, decoded, nil
}

// do executes req and returns the body of a 2xx response.
func (c *cartClient) do(req *http.Request, op string) ([]byte, error) {
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	endpoint := req.URL.String()
	c.logger.Debug("cart request",
		zap.String("op", op),
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID))

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, c.fail(&TransportError{Op: op, Endpoint: endpoint, Err: err})
	}

	body, readErr := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if err := errors.Join(readErr, closeErr); err != nil {
		return nil, c.fail(&TransportError{Op: op, Endpoint: endpoint, StatusCode: resp.StatusCode, Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.fail(&TransportError{Op: op, Endpoint: endpoint, StatusCode: resp.StatusCode, Body: truncateBody(body)})
	}

	c.logger.Debug("cart response",
		zap.String("op", op),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode))

	return body, nil
}

func (c *cartClient) fail(err *TransportError) error {
	c.logger.Warn("cart request failed",
		zap.String("op", err.Op),
		zap.String("endpoint", err.Endpoint),
		zap.Int("status", err.StatusCode),
		zap.Error(err))
	return err
}
