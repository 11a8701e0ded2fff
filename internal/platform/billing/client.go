package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spendwise/spendwise_app/internal/middleware"
)

// Client talks to the payment provider's REST API using form-encoded requests
// authenticated with a bearer key. It implements ports/services.BillingProvider.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a provider client. baseURL must not have a trailing slash.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateCustomer registers a provider customer carrying the local user id in
// its metadata so webhook events can be traced back.
func (c *Client) CreateCustomer(ctx context.Context, email, name, userID string) (string, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("name", name)
	form.Set("metadata[userId]", userID)

	var out struct {
		ID string `json:"id"`
	}
	if err := c.postForm(ctx, "/customers", form, &out); err != nil {
		return "", fmt.Errorf("creating billing customer: %w", err)
	}
	return out.ID, nil
}

// CreateCheckoutSession opens a subscription-mode hosted checkout for the
// given price and returns its redirect URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, customerID, priceID, successURL, cancelURL, userID string) (string, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("mode", "subscription")
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("metadata[userId]", userID)

	var out struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := c.postForm(ctx, "/checkout/sessions", form, &out); err != nil {
		return "", fmt.Errorf("creating checkout session: %w", err)
	}
	return out.URL, nil
}

// CreatePortalSession opens a hosted billing-portal session for an existing
// provider customer.
func (c *Client) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("return_url", returnURL)

	var out struct {
		URL string `json:"url"`
	}
	if err := c.postForm(ctx, "/billing_portal/sessions", form, &out); err != nil {
		return "", fmt.Errorf("creating portal session: %w", err)
	}
	return out.URL, nil
}

// GetSubscriptionPeriodEnd fetches a provider subscription and returns its
// current billing period end.
func (c *Client) GetSubscriptionPeriodEnd(ctx context.Context, subscriptionID string) (time.Time, error) {
	var out struct {
		CurrentPeriodEnd int64 `json:"current_period_end"`
	}
	if err := c.get(ctx, "/subscriptions/"+url.PathEscape(subscriptionID), &out); err != nil {
		return time.Time{}, fmt.Errorf("fetching subscription %s: %w", subscriptionID, err)
	}
	if out.CurrentPeriodEnd == 0 {
		return time.Time{}, fmt.Errorf("subscription %s has no current_period_end", subscriptionID)
	}
	return time.Unix(out.CurrentPeriodEnd, 0).UTC(), nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger := middleware.GetLoggerFromCtx(req.Context())
		logger.Error("billing provider request failed",
			"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
		return fmt.Errorf("billing provider returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding provider response: %w", err)
	}
	return nil
}
