// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"slices"

	"github.com/zinc-io/buybot/lib/buybot"
)

// ReadyState is reported for an order nothing has been attempted on.
const ReadyState = "ready"

// OrderHeaders labels the OrderRow columns.
var OrderHeaders = []string{"ID", "STATE", "RETAILER", "PRICE", "CARRIER", "TRACKING", "URL"}

// OrderRow is the display projection of an order and its current
// attempt.
type OrderRow struct {
	ID       string `json:"id"       yaml:"id"`
	State    string `json:"state"    yaml:"state"`
	Retailer string `json:"retailer" yaml:"retailer"`
	Price    string `json:"price"    yaml:"price"`
	Carrier  string `json:"carrier"  yaml:"carrier"`
	Tracking string `json:"tracking" yaml:"tracking"`
	URL      string `json:"url"      yaml:"url"`
}

// Cells returns the row in OrderHeaders order.
func (r OrderRow) Cells() []string {
	return []string{r.ID, r.State, r.Retailer, r.Price, r.Carrier, r.Tracking, r.URL}
}

// CurrentAttempt returns the attempt with the latest CreatedTime. When
// several share the latest time, the first in the order's own sequence
// wins. An order with no attempts yields a synthetic "ready" attempt
// with no price.
func CurrentAttempt(order buybot.Order) buybot.Attempt {
	if len(order.Attempts) == 0 {
		return buybot.Attempt{State: ReadyState}
	}
	current := order.Attempts[0]
	for _, attempt := range order.Attempts[1:] {
		if attempt.CreatedTime.After(current.CreatedTime.Time) {
			current = attempt
		}
	}
	return current
}

// OrderRows filters orders to ids (all orders when ids is empty) and
// projects each with its current attempt. orderURL builds the details
// link for an order id.
func OrderRows(orders []buybot.Order, ids []string, orderURL func(string) string) []OrderRow {
	rows := make([]OrderRow, 0, len(orders))
	for _, order := range orders {
		if len(ids) > 0 && !slices.Contains(ids, order.ID) {
			continue
		}
		rows = append(rows, orderRow(order, orderURL))
	}
	return rows
}

func orderRow(order buybot.Order, orderURL func(string) string) OrderRow {
	attempt := CurrentAttempt(order)
	var total *int64
	if attempt.PriceComponents != nil {
		total = attempt.PriceComponents.Total
	}
	return OrderRow{
		ID:       clean(order.ID),
		State:    clean(attempt.State),
		Retailer: clean(order.Retailer),
		Price:    formatOptionalPrice(total),
		Carrier:  carrier(attempt.TrackingCarrier),
		Tracking: optional(attempt.TrackingNumber),
		URL:      orderURL(order.ID),
	}
}
