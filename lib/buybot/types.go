// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package buybot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Retailers accepted by the order-attempt endpoint. The service owns
// the enumeration; these are the values known at the time of writing.
const (
	RetailerAmazon      = "amazon"
	RetailerAmazonFresh = "amazon_fresh"
)

// Identity is the account behind the current token.
type Identity struct {
	ID    string `json:"id,omitempty"    yaml:"id,omitempty"`
	Name  string `json:"name"            yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// User is the owner of a product.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Display returns the email when present, otherwise the user id.
func (u User) Display() string {
	if u.Email != "" {
		return u.Email
	}
	return u.ID
}

// Product is a candidate item awaiting approval.
type Product struct {
	ID        string   `json:"id"`
	State     string   `json:"state"`
	User      User     `json:"user"`
	Price     int64    `json:"price"`
	ProductID string   `json:"product_id"`
	Details   *Details `json:"details,omitempty"`
}

// Title returns the marketplace title and whether one was supplied.
func (p Product) Title() (string, bool) {
	if p.Details == nil || p.Details.Value == nil || p.Details.Value.Title == nil {
		return "", false
	}
	return *p.Details.Value.Title, true
}

// Details is the scraped marketplace listing attached to a product.
type Details struct {
	Value *DetailsValue `json:"value,omitempty"`
}

// DetailsValue holds the listing fields the client reads.
type DetailsValue struct {
	Title *string `json:"title,omitempty"`
}

// Order is a purchase against an approved product, with every attempt
// the service has made at it.
type Order struct {
	ID       string    `json:"id"`
	Retailer string    `json:"retailer"`
	Attempts []Attempt `json:"attempts"`
}

// Attempt is one purchase-execution try against an Order.
type Attempt struct {
	CreatedTime     Timestamp        `json:"created_time"`
	State           string           `json:"state"`
	PriceComponents *PriceComponents `json:"price_components,omitempty"`
	TrackingCarrier *string          `json:"tracking_carrier,omitempty"`
	TrackingNumber  *string          `json:"tracking_number,omitempty"`
}

// PriceComponents is the priced breakdown of an attempt. Total is in
// minor currency units.
type PriceComponents struct {
	Total *int64 `json:"total,omitempty"`
}

// DeviceAuthorization is the reply to a device-login request.
type DeviceAuthorization struct {
	BrowserURL string `json:"browser_url"`
	PollURL    string `json:"poll_url"`
}

// PollResult is the raw outcome of one poll of a device-login URL.
// Classifying it is the caller's job.
type PollResult struct {
	StatusCode int
	Body       PollBody
	// DecodeError is set when a 2xx body was not a JSON object.
	DecodeError error
}

// PollBody is the JSON shape of a poll response. Only one of Pending
// or the Token/UserID pair is expected to be set.
type PollBody struct {
	Pending bool   `json:"pending"`
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
}

// Timestamp is an attempt creation time. The service has sent both
// RFC 3339 strings and unix seconds over time; both decode.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON accepts an RFC 3339 string, a number of unix seconds
// (possibly fractional), or null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		if text == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return fmt.Errorf("buybot: invalid timestamp %q: %w", text, err)
		}
		t.Time = parsed
		return nil
	}
	seconds, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("buybot: invalid timestamp %s: %w", data, err)
	}
	whole, fraction := math.Modf(seconds)
	t.Time = time.Unix(int64(whole), int64(fraction*1e9)).UTC()
	return nil
}

// MarshalJSON writes RFC 3339, or null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
