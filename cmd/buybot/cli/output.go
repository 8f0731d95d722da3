// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"io"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// OutputFormat is an embeddable params struct that adds --output
// (table, json, yaml) and its --json alias to a command.
//
//	type lsParams struct {
//	    cli.OutputFormat
//	    All bool `flag:"all,a" desc:"list every user's products"`
//	}
//
//	// In Run:
//	if done, err := params.Emit(app.Stdout, rows); done {
//	    return err
//	}
//	// ... table rendering ...
type OutputFormat struct {
	Output string `flag:"output,o" desc:"output format: table, json, or yaml" default:"table"`
	JSON   bool   `flag:"json"     desc:"shorthand for --output json"`
}

// Format returns the selected format, or a validation error for an
// unknown one.
func (o *OutputFormat) Format() (string, error) {
	if o.JSON {
		return FormatJSON, nil
	}
	switch format := strings.ToLower(o.Output); format {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return format, nil
	default:
		return "", Validation("unknown output format %q (want table, json, or yaml)", o.Output)
	}
}

// Emit writes result to w as JSON or YAML when one of those formats is
// selected. Returns (true, err) when it handled output, or (false, nil)
// when the caller should render a table.
//
// Nil slices are written as empty lists, never null.
func (o *OutputFormat) Emit(w io.Writer, result any) (bool, error) {
	format, err := o.Format()
	if err != nil {
		return true, err
	}
	switch format {
	case FormatJSON:
		return true, WriteJSON(w, normalizeNilSlice(result))
	case FormatYAML:
		return true, WriteYAML(w, normalizeNilSlice(result))
	default:
		return false, nil
	}
}

// WriteJSON writes value as indented JSON.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// WriteYAML writes value as YAML with two-space indentation.
func WriteYAML(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return err
	}
	return encoder.Close()
}

// normalizeNilSlice returns an empty slice of the same type if value
// is a nil slice. Returns value unchanged for all other types.
func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}
