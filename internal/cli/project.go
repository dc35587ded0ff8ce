// SPDX-License-Identifier: MIT
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/treestore"
	"gitlab.com/fisherprime/treestore/grid"
	"gitlab.com/fisherprime/treestore/internal/itemfile"
)

type projectOptions struct {
	file    string
	workers int
	strict  bool
}

// NewProjectCommand creates the project command.
func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &projectOptions{}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project an item file into data grid rows",
		Long: `Project an item file into data grid rows.

Every item yields a row holding its path of ids from the root & its category: Group when
the item has children, Item otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProject(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML or JSON item file")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "size of the projection worker pool")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject items whose ancestry is broken")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runProject(cmd *cobra.Command, rootOpts *RootOptions, opts *projectOptions) error {
	cfg := rootOpts.Config()

	s, err := loadStore(cmd, cfg, opts.file, opts.strict)
	if err != nil {
		return err
	}

	rows, err := grid.Project(cmd.Context(), s, grid.WithConfig(cfg), grid.WithWorkers(opts.workers))
	if err != nil {
		return err
	}

	if rootOpts.Format == FormatJSON {
		return writeJSON(cmd.OutOrStdout(), rows)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tCATEGORY\tLABEL")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", strings.Join(row.Path, "/"), row.Category, row.Label)
	}

	return w.Flush()
}

// loadStore reads an item file into a Store.
func loadStore(cmd *cobra.Command, cfg *treestore.Config, path string, strict bool) (*treestore.Store, error) {
	items, err := itemfile.LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debugf("loaded %d items from %s", len(items), path)

	return treestore.NewBuildSource(
		treestore.WithItems(items),
		treestore.WithBuildConfig(cfg),
		treestore.WithStrict(strict),
	).Build(cmd.Context())
}
