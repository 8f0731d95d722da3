// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"context"
	"fmt"

	"github.com/zinc-io/buybot/lib/buybot"
)

// Source fetches the collections. *buybot.Client satisfies it.
type Source interface {
	Products(ctx context.Context) ([]buybot.Product, error)
	Orders(ctx context.Context) ([]buybot.Order, error)
	OrderURL(orderID string) string
}

// Lister fetches a collection and projects it. It holds no state
// between calls.
type Lister struct {
	source Source
}

// New returns a Lister reading from source.
func New(source Source) *Lister {
	return &Lister{source: source}
}

// Products fetches every product and returns the rows selected by
// filter.
func (l *Lister) Products(ctx context.Context, filter ProductFilter) ([]ProductRow, error) {
	products, err := l.source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return ProductRows(products, filter), nil
}

// Orders fetches every order and returns the rows for ids, or all rows
// when ids is empty.
func (l *Lister) Orders(ctx context.Context, ids []string) ([]OrderRow, error) {
	orders, err := l.source.Orders(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return OrderRows(orders, ids, l.source.OrderURL), nil
}

// ProductGrid returns the cells of rows, one slice per row.
func ProductGrid(rows []ProductRow) [][]string {
	grid := make([][]string, len(rows))
	for i, row := range rows {
		grid[i] = row.Cells()
	}
	return grid
}

// OrderGrid returns the cells of rows, one slice per row.
func OrderGrid(rows []OrderRow) [][]string {
	grid := make([][]string, len(rows))
	for i, row := range rows {
		grid[i] = row.Cells()
	}
	return grid
}
