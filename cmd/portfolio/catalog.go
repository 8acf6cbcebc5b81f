package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/17okk-xie/portfolio/internal/auth"
	"github.com/17okk-xie/portfolio/internal/catalog"
)

func newCatalogCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and edit the project catalog",
	}

	cmd.AddCommand(newCatalogListCommand(opts))
	cmd.AddCommand(newCatalogDeleteCommand(opts))
	cmd.AddCommand(newCatalogRestoreCommand(opts))

	return cmd
}

func newCatalogListCommand(opts *rootOptions) *cobra.Command {
	var (
		category string
		hidden   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			var items []catalog.CatalogItem
			if hidden {
				items, err = a.catalog.Hidden(cmd.Context())
			} else {
				items, err = a.catalog.LoadAll(cmd.Context())
			}
			if err != nil {
				return err
			}
			if category != "" {
				c, err := catalog.ParseCategory(category)
				if err != nil {
					return err
				}
				items = catalog.InCategory(items, c)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tCATEGORY\tSTATUS\tTITLE")
			for _, it := range items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", it.ID, it.Kind, it.Category, it.Status, it.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list this category (coding, media, others)")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "list hidden built-in projects instead")

	return cmd
}

func newCatalogDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete uploaded projects or hide built-in ones",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			a, err := openApp(opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			res := a.catalog.BulkDelete(cmd.Context(), ids)
			for _, id := range res.Deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", id)
			}
			if len(res.Failed) == 0 {
				return nil
			}

			failed := make([]int64, 0, len(res.Failed))
			for id := range res.Failed {
				failed = append(failed, id)
			}
			slices.Sort(failed)
			errs := make([]error, 0, len(failed))
			for _, id := range failed {
				errs = append(errs, fmt.Errorf("%d: %w", id, res.Failed[id]))
			}
			return errors.Join(errs...)
		},
	}
}

func newCatalogRestoreCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Show a hidden built-in project again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			a, err := openApp(opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.catalog.Restore(cmd.Context(), ids[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d\n", ids[0])
			return nil
		},
	}
}

func newPINHashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pin-hash <pin>",
		Short: "Print the bcrypt hash of a PIN for the pin_hash setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := auth.NewPIN(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pin.Hash())
			return nil
		},
	}
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid project id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
