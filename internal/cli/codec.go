// SPDX-License-Identifier: MIT
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/treestore"
	"gitlab.com/fisherprime/treestore/internal/itemfile"
	"gitlab.com/fisherprime/treestore/lexer"
)

// NewSerializeCommand creates the serialize command.
func NewSerializeCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "serialize",
		Short: "Write the topology of an item file in the compact notation",
		Long: `Write the topology of an item file in the compact notation.

Each item is written as its id, its serialized children & an end marker, e.g.
"1,2),3))" for root 1 holding 2 & 3. Labels are not serialized.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := rootOpts.Config()

			s, err := loadStore(cmd, cfg, file, false)
			if err != nil {
				return err
			}

			notation, err := s.Serialize(cmd.Context(), &lexer.Config{Logger: cfg.Logger, Debug: cfg.Debug})
			if err != nil {
				return err
			}

			if rootOpts.Format == FormatJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"notation": notation})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), notation)

			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON item file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// NewDeserializeCommand creates the deserialize command.
func NewDeserializeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deserialize <notation>",
		Short: "Convert the compact notation into an item list",
		Long: `Convert the compact notation into an item list.

The text format writes a YAML item file the other commands accept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.Config()

			items, err := treestore.Deserialize(cmd.Context(),
				lexer.WithString(args[0]), lexer.WithLogger(cfg.Logger), lexer.WithDebug(cfg.Debug))
			if err != nil {
				return err
			}

			if rootOpts.Format == FormatJSON {
				if items == nil {
					items = []treestore.Item{}
				}
				return writeJSON(cmd.OutOrStdout(), items)
			}

			return itemfile.Write(cmd.OutOrStdout(), items)
		},
	}
}
