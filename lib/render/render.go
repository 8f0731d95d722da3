// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package render writes a rectangular grid of pre-formatted strings as
// an aligned text table.
//
// Headers are underlined with dashes and columns are separated by
// spaces. When color is enabled the header row is bold and the status
// column (if one is named) is colored by value. Without color the
// output is plain ASCII, suitable for pipes and tests.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Options control table output.
type Options struct {
	// Color enables ANSI styling.
	Color bool
	// StatusColumn names the header whose cells are colored by value.
	// Empty means no status coloring.
	StatusColumn string
}

// ColorEnabled reports whether output to w should be colored: w must be
// a terminal and NO_COLOR must be unset.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// dashBorder underlines the header and separates columns with a space.
var dashBorder = lipgloss.Border{
	Top:    "-",
	Left:   " ",
	Middle: " ",
}

var statusColors = map[string]lipgloss.Color{
	"approved":  "2",
	"placed":    "2",
	"shipped":   "2",
	"delivered": "2",
	"ready":     "6",
	"pending":   "3",
	"placing":   "3",
	"rejected":  "1",
	"failed":    "1",
	"cancelled": "1",
}

// Table writes headers and rows to w. Every row must have one cell per
// header.
func Table(w io.Writer, headers []string, rows [][]string, options Options) error {
	for index, row := range rows {
		if len(row) != len(headers) {
			return fmt.Errorf("render: row %d has %d cells, want %d", index, len(row), len(headers))
		}
	}

	profile := termenv.Ascii
	if options.Color {
		profile = termenv.ANSI256
	}
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	statusColumn := -1
	for index, header := range headers {
		if options.StatusColumn != "" && header == options.StatusColumn {
			statusColumn = index
		}
	}

	cell := renderer.NewStyle().PaddingRight(1)
	header := cell.Bold(true)

	output := table.New().
		Border(dashBorder).
		BorderStyle(renderer.NewStyle()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderHeader(true).
		BorderColumn(true).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, column int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if column == statusColumn && row >= 0 && row < len(rows) {
				if color, ok := statusColors[strings.ToLower(rows[row][column])]; ok {
					return cell.Foreground(color)
				}
			}
			return cell
		})

	_, err := fmt.Fprintln(w, strings.TrimRight(output.String(), "\n"))
	return err
}
