// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package products

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/zinc-io/buybot/cmd/buybot/cli"
	"github.com/zinc-io/buybot/lib/buybot"
	"github.com/zinc-io/buybot/lib/buybottest"
	"github.com/zinc-io/buybot/lib/listing"
)

func catalog() []buybot.Product {
	return []buybot.Product{
		product("p1", "pending", "u1", 2599, "Coffee beans"),
		product("p2", "approved", "u2", 100, ""),
		product("p3", "rejected", "u1", 750, "Kettle"),
	}
}

// tableRows returns the table's data rows (after the header and rule).
func tableRows(t *testing.T, output string) []string {
	t.Helper()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) < 2 || !strings.Contains(lines[0], "APPROVAL") {
		t.Fatalf("output is not a product table:\n%s", output)
	}
	return lines[2:]
}

func TestList_OwnProducts(t *testing.T) {
	h := newHarness(t, catalog()...)

	if err := h.run("ls"); err != nil {
		t.Fatal(err)
	}
	rows := tableRows(t, h.stdout.String())
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want p1 and p3:\n%s", len(rows), h.stdout.String())
	}
	for _, want := range []string{"p1", "pending", "u1@example.com", "$25.99", "Coffee beans", "https://www.amazon.com/-/dp/B00p1"} {
		if !strings.Contains(rows[0], want) {
			t.Errorf("row %q missing %q", rows[0], want)
		}
	}
	if !strings.Contains(rows[1], "p3") {
		t.Errorf("second row %q, want p3", rows[1])
	}

	calls := h.server.CallsTo(http.MethodGet, "/v0/products")
	if len(calls) != 1 || calls[0].Authorization != "Bearer "+testToken {
		t.Errorf("list calls = %+v", calls)
	}
}

func TestList_All(t *testing.T) {
	h := newHarness(t, catalog()...)

	if err := h.run("ls", "-a"); err != nil {
		t.Fatal(err)
	}
	rows := tableRows(t, h.stdout.String())
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if !strings.Contains(rows[1], "p2") || !strings.Contains(rows[1], listing.None) {
		t.Errorf("row %q should be p2 with no title", rows[1])
	}
}

func TestList_IDsPreserveCollectionOrder(t *testing.T) {
	h := newHarness(t, catalog()...)

	if err := h.run("ls", "--json", "p3", "p2"); err != nil {
		t.Fatal(err)
	}
	var rows []listing.ProductRow
	if err := json.Unmarshal(h.stdout.Bytes(), &rows); err != nil {
		t.Fatalf("parsing %q: %v", h.stdout.String(), err)
	}
	if len(rows) != 2 || rows[0].ID != "p2" || rows[1].ID != "p3" {
		t.Errorf("rows = %+v, want p2 then p3", rows)
	}
}

func TestList_YAML(t *testing.T) {
	h := newHarness(t, catalog()...)

	if err := h.run("ls", "-o", "yaml"); err != nil {
		t.Fatal(err)
	}
	var rows []listing.ProductRow
	if err := yaml.Unmarshal(h.stdout.Bytes(), &rows); err != nil {
		t.Fatalf("parsing %q: %v", h.stdout.String(), err)
	}
	if len(rows) != 2 || rows[0].Price != "$25.99" || rows[1].Title != "Kettle" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestList_EmptyJSONIsList(t *testing.T) {
	h := newHarness(t)

	if err := h.run("ls", "--json"); err != nil {
		t.Fatal(err)
	}
	if got := h.stdout.String(); got != "[]\n" {
		t.Errorf("stdout = %q, want []", got)
	}
}

func TestList_ServiceFailure(t *testing.T) {
	h := newHarness(t)
	h.server.Close()

	err := h.run("ls")
	requireCategory(t, err, cli.CategoryTransient)
	if h.stdout.Len() != 0 {
		t.Errorf("stdout = %q after failure", h.stdout.String())
	}
}

func TestApprove_RelistsAffectedProducts(t *testing.T) {
	h := newHarness(t, catalog()...)

	if err := h.run("approve", "p1", "p2"); err != nil {
		t.Fatal(err)
	}

	approvals := h.server.CallsTo(http.MethodPost, "/v0/products/approve")
	if len(approvals) != 1 {
		t.Fatalf("approve calls = %d, want 1", len(approvals))
	}
	var body struct {
		IDs     []string `json:"ids"`
		Attempt *bool    `json:"attempt"`
	}
	if err := json.Unmarshal(approvals[0].Body, &body); err != nil {
		t.Fatal(err)
	}
	if len(body.IDs) != 2 || body.IDs[0] != "p1" || body.IDs[1] != "p2" || body.Attempt == nil || *body.Attempt {
		t.Errorf("approve body = %s", approvals[0].Body)
	}

	if relists := h.server.CallsTo(http.MethodGet, "/v0/products"); len(relists) != 1 {
		t.Errorf("re-list calls = %d, want 1", len(relists))
	}
	rows := tableRows(t, h.stdout.String())
	if len(rows) != 2 || !strings.Contains(rows[0], "p1") || !strings.Contains(rows[1], "p2") {
		t.Errorf("re-listed rows:\n%s", h.stdout.String())
	}
}

func TestApprove_RefusalPrintsMessage(t *testing.T) {
	h := newHarness(t, catalog()...)
	h.server.SetApproveReply(buybottest.Reply{Status: http.StatusBadRequest, Body: map[string]string{"message": "already approved"}})

	if err := h.run("approve", "p1", "p2"); err != nil {
		t.Fatalf("refusal should exit cleanly, got %v", err)
	}
	if got := h.stderr.String(); got != "already approved\n" {
		t.Errorf("stderr = %q", got)
	}
	if h.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", h.stdout.String())
	}
	if relists := h.server.CallsTo(http.MethodGet, "/v0/products"); len(relists) != 0 {
		t.Errorf("refused action re-listed products")
	}
}

func TestApprove_BadRequestWithoutMessageFails(t *testing.T) {
	h := newHarness(t, catalog()...)
	h.server.SetApproveReply(buybottest.Reply{Status: http.StatusBadRequest, Body: map[string]string{}})

	err := h.run("approve", "p1")
	requireCategory(t, err, cli.CategoryTransient)
	if cli.ExitCode(err) != cli.ExitFailure {
		t.Errorf("ExitCode = %d", cli.ExitCode(err))
	}
}

func TestReject(t *testing.T) {
	h := newHarness(t, catalog()...)

	if err := h.run("reject", "--json", "p3"); err != nil {
		t.Fatal(err)
	}
	if calls := h.server.CallsTo(http.MethodPost, "/v0/products/reject"); len(calls) != 1 {
		t.Errorf("reject calls = %d, want 1", len(calls))
	}
	if calls := h.server.CallsTo(http.MethodPost, "/v0/products/approve"); len(calls) != 0 {
		t.Errorf("reject hit the approve endpoint")
	}
	var rows []listing.ProductRow
	if err := json.Unmarshal(h.stdout.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].ID != "p3" || rows[0].Approval != "rejected" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestReview_RequiresIDs(t *testing.T) {
	h := newHarness(t)

	for _, verb := range []string{"approve", "reject"} {
		err := h.run(verb)
		requireCategory(t, err, cli.CategoryValidation)
		if cli.ExitCode(err) != cli.ExitUsage {
			t.Errorf("%s: ExitCode = %d, want %d", verb, cli.ExitCode(err), cli.ExitUsage)
		}
	}
	if calls := h.server.Calls(); len(calls) != 0 {
		t.Errorf("missing ids reached the service: %+v", calls)
	}
}

func TestReview_Unauthorized(t *testing.T) {
	h := newHarness(t, catalog()...)
	client, err := buybot.NewClient(buybot.Config{BaseURL: h.server.URL, Token: "revoked"})
	if err != nil {
		t.Fatal(err)
	}
	h.app.Client = client

	err = h.run("approve", "p1")
	requireCategory(t, err, cli.CategoryForbidden)
}
