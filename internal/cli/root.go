// SPDX-License-Identifier: MIT

// Package cli implements the treegrid command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"gitlab.com/fisherprime/treestore"
)

// RootOptions holds the global flags shared by every command.
type RootOptions struct {
	Verbose bool
	Format  string

	logger *logrus.Logger
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats lists the accepted --format values.
var ValidFormats = []string{FormatText, FormatJSON}

// NewRootCommand creates the treegrid root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{logger: logrus.New()}

	cmd := &cobra.Command{
		Use:   "treegrid",
		Short: "treegrid - hierarchical item store tooling",
		Long: `Load flat lists of parent-linked items into a tree store, project them into
data grid rows or convert their topology to & from the compact notation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			opts.logger.SetOutput(cmd.ErrOrStderr())
			if opts.Verbose {
				opts.logger.SetLevel(logrus.DebugLevel)
			}

			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (json|text)")

	cmd.AddCommand(NewProjectCommand(opts))
	cmd.AddCommand(NewSerializeCommand(opts))
	cmd.AddCommand(NewDeserializeCommand(opts))

	return cmd
}

// Config creates the store configuration matching the global flags.
func (o *RootOptions) Config() *treestore.Config {
	return &treestore.Config{Logger: o.logger, Debug: o.Verbose}
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}
