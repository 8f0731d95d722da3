// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"slices"

	"github.com/zinc-io/buybot/lib/buybot"
)

// ProductHeaders labels the ProductRow columns.
var ProductHeaders = []string{"ID", "APPROVAL", "USER", "PRICE", "TITLE", "URL"}

// ProductRow is the display projection of a product.
type ProductRow struct {
	ID       string `json:"id"       yaml:"id"`
	Approval string `json:"approval" yaml:"approval"`
	User     string `json:"user"     yaml:"user"`
	Price    string `json:"price"    yaml:"price"`
	Title    string `json:"title"    yaml:"title"`
	URL      string `json:"url"      yaml:"url"`
}

// Cells returns the row in ProductHeaders order.
func (r ProductRow) Cells() []string {
	return []string{r.ID, r.Approval, r.User, r.Price, r.Title, r.URL}
}

// ProductFilter selects which products are listed. A non-empty IDs
// wins over everything else. Otherwise only products owned by UserID
// are kept, unless All is set.
type ProductFilter struct {
	IDs    []string
	All    bool
	UserID string
}

func (f ProductFilter) keep(product buybot.Product) bool {
	if len(f.IDs) > 0 {
		return slices.Contains(f.IDs, product.ID)
	}
	return f.All || product.User.ID == f.UserID
}

// ProductRows filters and projects products. Rows keep the order of
// the fetched collection.
func ProductRows(products []buybot.Product, filter ProductFilter) []ProductRow {
	rows := make([]ProductRow, 0, len(products))
	for _, product := range products {
		if !filter.keep(product) {
			continue
		}
		rows = append(rows, productRow(product))
	}
	return rows
}

func productRow(product buybot.Product) ProductRow {
	title := None
	if value, ok := product.Title(); ok {
		title = truncate(clean(value), TitleWidth)
	}
	return ProductRow{
		ID:       clean(product.ID),
		Approval: clean(product.State),
		User:     clean(product.User.Display()),
		Price:    FormatPrice(product.Price),
		Title:    title,
		URL:      buybot.ProductURL(product.ProductID),
	}
}
