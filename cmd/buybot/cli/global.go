// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"

	"github.com/spf13/pflag"
)

// GlobalOptions are flags accepted before the command name.
type GlobalOptions struct {
	Verbose bool `flag:"verbose,v" desc:"enable debug logging"`
}

// GlobalFlags returns a flag set bound to options, for parsing and for
// the root command's help.
func GlobalFlags(options *GlobalOptions) *pflag.FlagSet {
	flagSet := FlagsFromParams("buybot", options)
	flagSet.SetInterspersed(false)
	return flagSet
}

// ParseGlobal consumes leading global flags from args and returns the
// options and the remaining args (starting at the command name).
func ParseGlobal(args []string) (GlobalOptions, []string, error) {
	var options GlobalOptions
	flagSet := GlobalFlags(&options)
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return options, []string{"--help"}, nil
		}
		return options, nil, Validation("%s\n\nRun 'buybot --help' for usage.", err)
	}
	return options, flagSet.Args(), nil
}
