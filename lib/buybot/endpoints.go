// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package buybot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// CurrentUser returns the account behind the configured token.
func (c *Client) CurrentUser(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := c.callJSON(ctx, http.MethodGet, "/v0/users/current", nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// StartDeviceLogin begins a device login for hostname. The request is
// unauthenticated.
func (c *Client) StartDeviceLogin(ctx context.Context, hostname string) (*DeviceAuthorization, error) {
	body, err := c.do(ctx, http.MethodPost, "/cli/auth", nil, false, url.Values{"hostname": {hostname}})
	if err != nil {
		return nil, err
	}
	var authorization DeviceAuthorization
	if err := json.Unmarshal(body, &authorization); err != nil {
		return nil, fmt.Errorf("buybot: decoding device login response: %w", err)
	}
	if authorization.BrowserURL == "" || authorization.PollURL == "" {
		return nil, errors.New("buybot: device login response is missing browser_url or poll_url")
	}
	return &authorization, nil
}

// PollDeviceLogin polls an absolute poll URL once, unauthenticated. A
// returned error means the request itself failed (network, timeout,
// cancellation). Every HTTP status, including 404, is reported through
// the PollResult.
func (c *Client) PollDeviceLogin(ctx context.Context, pollURL string) (*PollResult, error) {
	body, err := c.do(ctx, http.MethodGet, pollURL, nil, false, nil)
	var apiError *APIError
	switch {
	case errors.As(err, &apiError):
		return &PollResult{StatusCode: apiError.StatusCode}, nil
	case err != nil:
		return nil, err
	}

	result := &PollResult{StatusCode: http.StatusOK}
	if decodeErr := json.Unmarshal(body, &result.Body); decodeErr != nil {
		result.DecodeError = decodeErr
	}
	return result, nil
}

// Products returns every product visible to the caller.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.callJSON(ctx, http.MethodGet, "/v0/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

type productActionRequest struct {
	IDs     []string `json:"ids"`
	Attempt bool     `json:"attempt"`
}

// ApproveProducts approves the given products without triggering a
// purchase attempt.
func (c *Client) ApproveProducts(ctx context.Context, ids []string) error {
	_, err := c.Call(ctx, http.MethodPost, "/v0/products/approve", productActionRequest{IDs: ids})
	return err
}

// RejectProducts rejects the given products.
func (c *Client) RejectProducts(ctx context.Context, ids []string) error {
	_, err := c.Call(ctx, http.MethodPost, "/v0/products/reject", productActionRequest{IDs: ids})
	return err
}

// Orders returns every order visible to the caller.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.callJSON(ctx, http.MethodGet, "/v0/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AttemptOrder asks the service to make a new purchase attempt with
// retailer. An empty orderID creates a new order; otherwise the attempt
// is added to that existing order.
func (c *Client) AttemptOrder(ctx context.Context, retailer, orderID string) (*Order, error) {
	path := "/v0/orders/attempt"
	if orderID != "" {
		path += "/" + url.PathEscape(orderID)
	}
	request := struct {
		Retailer string `json:"retailer"`
	}{Retailer: retailer}

	var order Order
	if err := c.callJSON(ctx, http.MethodPost, path, request, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderURL is the web page for an order.
func (c *Client) OrderURL(orderID string) string {
	return c.baseURL + "/orders/" + url.PathEscape(orderID)
}

// ProductURL is the marketplace page for an external product id.
func ProductURL(productID string) string {
	return "https://www.amazon.com/-/dp/" + url.PathEscape(productID)
}
