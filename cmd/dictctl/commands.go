package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	dictionary "github.com/mozilla/glean-dictionary"
	"github.com/mozilla/glean-dictionary/codec"
	"github.com/mozilla/glean-dictionary/model"
	"github.com/mozilla/glean-dictionary/ranking"
)

func newImportCmd(c *cli) *cobra.Command {
	var app, file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON array of items as the next catalog version of an app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := readItems(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			d, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			snap, err := d.Import(cmd.Context(), app, items)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d items into %s (version %d)\n", len(snap.Items), app, snap.Version)
			return nil
		},
	}
	cmd.Flags().StringVar(&app, "app", "", "application name")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "items file, - for stdin")
	_ = cmd.MarkFlagRequired("app")
	return cmd
}

func readItems(stdin io.Reader, file string) (model.Collection, error) {
	r := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	var items model.Collection
	if err := codec.Default.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if items == nil {
		return nil, errors.New("decode items: expected a JSON array")
	}
	return items, nil
}

type outputFlags struct {
	asJSON bool
	limit  int
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "print items as JSON")
	cmd.Flags().IntVar(&o.limit, "limit", 0, "print at most this many items (0 = all)")
}

func (o *outputFlags) print(w io.Writer, items model.Collection) error {
	if o.limit > 0 && len(items) > o.limit {
		items = items[:o.limit]
	}
	if o.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", it.Name, it.Type, it.Expires)
	}
	return tw.Flush()
}

func newSearchCmd(c *cli) *cobra.Command {
	var (
		app             string
		showUncollected bool
		out             outputFlags
	)

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search an app's catalog with free text and labels (tags:, origin:, type:, name:, expires:)",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			hits, err := d.SearchApp(cmd.Context(), app, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return out.print(cmd.OutOrStdout(), d.FilterByLifecycle(hits, showUncollected))
		},
	}
	cmd.Flags().StringVar(&app, "app", "", "application name")
	cmd.Flags().BoolVar(&showUncollected, "show-uncollected", false, "include expired and removed items")
	out.register(cmd)
	_ = cmd.MarkFlagRequired("app")
	return cmd
}

func newExpiringCmd(c *cli) *cobra.Command {
	var (
		app     string
		horizon string
		out     outputFlags
	)

	cmd := &cobra.Command{
		Use:   "expiring",
		Short: "List items expiring within a number of months, or never",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			cat, err := d.Catalog(cmd.Context(), app)
			if err != nil {
				return err
			}
			items, err := d.FilterByExpirationWindow(cat.Items(), horizon)
			if err != nil {
				return err
			}
			return out.print(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().StringVar(&app, "app", "", "application name")
	cmd.Flags().StringVar(&horizon, "horizon", "6", `months ahead, or "never"`)
	out.register(cmd)
	_ = cmd.MarkFlagRequired("app")
	return cmd
}

func newRankCmd(c *cli) *cobra.Command {
	var (
		app    string
		legacy bool
		glam   bool
		out    outputFlags
	)

	cmd := &cobra.Command{
		Use:   "rank query",
		Short: "Fuzzy-match item summaries and rank the hits",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra []dictionary.Option
			if legacy {
				extra = append(extra, dictionary.WithRankingMode(ranking.ModeLegacy))
			}
			d, err := c.open(cmd.Context(), extra...)
			if err != nil {
				return err
			}
			cat, err := d.Catalog(cmd.Context(), app)
			if err != nil {
				return err
			}
			hits := d.LegacySearch(strings.Join(args, " "), cat.Items(), out.limit, glam)
			return out.print(cmd.OutOrStdout(), hits)
		},
	}
	cmd.Flags().StringVar(&app, "app", "", "application name")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "rank by the legacy active flag")
	cmd.Flags().BoolVar(&glam, "glam", false, "boost metric types supported by GLAM")
	out.register(cmd)
	_ = cmd.MarkFlagRequired("app")
	return cmd
}

func newAppsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List applications with stored catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			apps, err := d.Apps(cmd.Context())
			if err != nil {
				return err
			}
			for _, app := range apps {
				fmt.Fprintln(cmd.OutOrStdout(), app)
			}
			return nil
		},
	}
}
