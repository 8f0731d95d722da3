// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"slices"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

type EmbeddedParams struct {
	Name string `flag:"name,n" desc:"a name"`
}

type bindingParams struct {
	EmbeddedParams
	All      bool          `flag:"all,a" desc:"everything"`
	Limit    int           `flag:"limit" desc:"how many" default:"10"`
	Wait     time.Duration `flag:"wait" desc:"how long" default:"15m"`
	Tags     []string      `flag:"tag" desc:"tags"`
	Verbose  bool          `flag:"loud" default:"true"`
	Internal string
}

func TestBindFlags_Defaults(t *testing.T) {
	var params bindingParams
	flagSet := FlagsFromParams("test", &params)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatal(err)
	}

	if params.Limit != 10 {
		t.Errorf("Limit = %d, want 10", params.Limit)
	}
	if params.Wait != 15*time.Minute {
		t.Errorf("Wait = %s, want 15m", params.Wait)
	}
	if !params.Verbose {
		t.Error("bool default true not applied")
	}
	if params.All || params.Name != "" || params.Tags != nil {
		t.Errorf("unexpected non-zero values: %+v", params)
	}
	if flagSet.Lookup("internal") != nil || flagSet.Lookup("Internal") != nil {
		t.Error("untagged field bound as a flag")
	}
}

func TestBindFlags_Parse(t *testing.T) {
	var params bindingParams
	flagSet := FlagsFromParams("test", &params)
	err := flagSet.Parse([]string{"-a", "-n", "x", "--limit=3", "--wait", "90s", "--tag", "a,b", "--tag", "c", "--loud=false"})
	if err != nil {
		t.Fatal(err)
	}

	if !params.All || params.Name != "x" || params.Limit != 3 || params.Wait != 90*time.Second || params.Verbose {
		t.Errorf("params = %+v", params)
	}
	if !slices.Equal(params.Tags, []string{"a", "b", "c"}) {
		t.Errorf("Tags = %v", params.Tags)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	var notStruct string
	if err := BindFlags(&notStruct, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("expected error for non-struct params")
	}

	var byValue bindingParams
	if err := BindFlags(byValue, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("expected error for params passed by value")
	}

	var unsupported struct {
		Ratio float64 `flag:"ratio"`
	}
	if err := BindFlags(&unsupported, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("expected error for unsupported field type")
	}

	var badDefault struct {
		Count int `flag:"count" default:"many"`
	}
	if err := BindFlags(&badDefault, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("expected error for unparseable default")
	}
}

func TestFlagsFromParams_PanicsOnInvalidParams(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams did not panic")
		}
	}()
	var unsupported struct {
		Ratio float64 `flag:"ratio"`
	}
	FlagsFromParams("test", &unsupported)
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"login", "login", 0},
		{"logn", "login", 1},
		{"prodcuts", "products", 2},
		{"orders", "whoami", 6},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "login"}, {Name: "logout"}, {Name: "orders"}}

	if got := suggestCommand("logn", commands); got != "login" {
		t.Errorf("suggestCommand(logn) = %q, want login", got)
	}
	if got := suggestCommand("ordrs", commands); got != "orders" {
		t.Errorf("suggestCommand(ordrs) = %q, want orders", got)
	}
	if got := suggestCommand("completely-different", commands); got != "" {
		t.Errorf("suggestCommand(completely-different) = %q, want none", got)
	}
}

func TestSuggestFlag(t *testing.T) {
	var params struct {
		All     bool   `flag:"all,a"`
		OrderID string `flag:"order-id"`
	}
	flagSet := FlagsFromParams("test", &params)

	if got := suggestFlag([]string{"-a", "--orderid=x"}, flagSet); got != "--order-id" {
		t.Errorf("suggestFlag = %q, want --order-id", got)
	}
	if got := suggestFlag([]string{"--zzzzzzzzzz"}, flagSet); got != "" {
		t.Errorf("suggestFlag = %q, want none", got)
	}
	if got := suggestFlag([]string{"--", "--orderid"}, flagSet); got != "" {
		t.Errorf("suggestFlag past -- = %q, want none", got)
	}
}
