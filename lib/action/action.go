// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package action issues state-changing calls and re-lists what they
// touched.
//
// A 400 response that carries a message is a validation failure the
// user can act on: it comes back in [Outcome.Validation] with a nil
// error and nothing is re-listed. Every other failure is returned as an
// error.
package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zinc-io/buybot/lib/buybot"
	"github.com/zinc-io/buybot/lib/listing"
)

// ErrNoIDs is returned when a product action names no products.
var ErrNoIDs = errors.New("action: at least one product id is required")

// API is the subset of *buybot.Client the invoker needs.
type API interface {
	ApproveProducts(ctx context.Context, ids []string) error
	RejectProducts(ctx context.Context, ids []string) error
	AttemptOrder(ctx context.Context, retailer, orderID string) (*buybot.Order, error)
}

// Lister re-lists resources after a mutation. *listing.Lister
// satisfies it.
type Lister interface {
	Products(ctx context.Context, filter listing.ProductFilter) ([]listing.ProductRow, error)
	Orders(ctx context.Context, ids []string) ([]listing.OrderRow, error)
}

// Outcome is the result of an action that did not fail outright.
// Exactly one of Validation, Products, or Orders is meaningful.
type Outcome struct {
	// Validation is the service's message for a rejected request.
	Validation string
	// Products holds the re-listed products after approve or reject.
	Products []listing.ProductRow
	// Orders holds the re-listed order after an attempt.
	Orders []listing.OrderRow
}

// Refused reports whether the service rejected the request with a
// validation message.
func (o Outcome) Refused() bool { return o.Validation != "" }

// Invoker runs actions against the service.
type Invoker struct {
	api    API
	lister Lister
	logger *slog.Logger
}

// New returns an Invoker. A nil logger means slog.Default().
func New(api API, lister Lister, logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{api: api, lister: lister, logger: logger}
}

// Approve approves ids and re-lists them.
func (i *Invoker) Approve(ctx context.Context, ids []string) (Outcome, error) {
	return i.productAction(ctx, "approve", ids, i.api.ApproveProducts)
}

// Reject rejects ids and re-lists them.
func (i *Invoker) Reject(ctx context.Context, ids []string) (Outcome, error) {
	return i.productAction(ctx, "reject", ids, i.api.RejectProducts)
}

func (i *Invoker) productAction(ctx context.Context, verb string, ids []string, call func(context.Context, []string) error) (Outcome, error) {
	if len(ids) == 0 {
		return Outcome{}, ErrNoIDs
	}
	if err := call(ctx, ids); err != nil {
		if message, ok := buybot.ValidationMessage(err); ok {
			i.logger.Debug("product action refused", "action", verb, "ids", ids, "message", message)
			return Outcome{Validation: message}, nil
		}
		return Outcome{}, fmt.Errorf("%s products: %w", verb, err)
	}

	rows, err := i.lister.Products(ctx, listing.ProductFilter{IDs: ids})
	if err != nil {
		return Outcome{}, err
	}
	if len(rows) != len(ids) {
		i.logger.Warn("re-list returned a different number of products", "action", verb, "requested", len(ids), "listed", len(rows))
	}
	return Outcome{Products: rows}, nil
}

// AttemptOrder asks the service to purchase through retailer, adding
// the attempt to orderID when it is non-empty, and re-lists the
// resulting order.
func (i *Invoker) AttemptOrder(ctx context.Context, retailer, orderID string) (Outcome, error) {
	if retailer == "" {
		return Outcome{}, errors.New("action: retailer is required")
	}
	order, err := i.api.AttemptOrder(ctx, retailer, orderID)
	if err != nil {
		if message, ok := buybot.ValidationMessage(err); ok {
			i.logger.Debug("order attempt refused", "retailer", retailer, "order", orderID, "message", message)
			return Outcome{Validation: message}, nil
		}
		return Outcome{}, fmt.Errorf("attempting order: %w", err)
	}
	if order.ID == "" {
		return Outcome{}, errors.New("attempting order: response has no order id")
	}

	rows, err := i.lister.Orders(ctx, []string{order.ID})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Orders: rows}, nil
}
