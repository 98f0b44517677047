package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/andreiashu/countryexplorer"
)

// geohashPrecision is used for locate output (~5km cells).
const geohashPrecision = 5

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var fuzzy int
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "List countries whose name contains term",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.loadController(cmd)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			if err := ctrl.SetSearchTerm(term); err != nil {
				return err
			}
			view := ctrl.Snapshot(countryexplorer.SearchOptions{FuzzyDistance: fuzzy})

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tCAPITAL\tPOPULATION\tREGION")
			for _, c := range view.Results {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					c.Code, c.CommonName, c.CapitalOrNA(), humanize.Comma(c.Population), c.Region)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d matching countries\n", len(view.Results))
			return nil
		},
	}
	cmd.Flags().IntVar(&fuzzy, "fuzzy", 0, "max edit distance for typo tolerance (0 disables)")
	return cmd
}

func newCompareCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compare CODE...",
		Short: "Compare countries side by side",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := opts.loadController(cmd)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			for _, code := range args {
				code = strings.ToUpper(code)
				inserted, err := ctrl.Select(code)
				if err != nil {
					return err
				}
				if !inserted && !contains(ctrl.Snapshot().Comparison, code) {
					return fmt.Errorf("unknown country code %q", code)
				}
			}

			view := ctrl.Snapshot()
			summary := countryexplorer.Summarize(view.Comparison)
			out := cmd.OutOrStdout()
			for _, row := range summary.Rows {
				fmt.Fprintf(out, "%s (%s)\n", row.Name, row.Code)
				fmt.Fprintf(out, "  Capital:    %s\n", row.Capital)
				fmt.Fprintf(out, "  Population: %s\n", row.Population)
				fmt.Fprintf(out, "  Area:       %s\n", row.Area)
				fmt.Fprintf(out, "  Region:     %s\n", row.Region)
				fmt.Fprintf(out, "  Languages:  %s\n", row.Languages)
				fmt.Fprintf(out, "  Currencies: %s\n", row.Currencies)
				fmt.Fprintf(out, "  Learn more: %s\n", row.WikipediaLink)
			}
			for _, d := range summary.Distances {
				fmt.Fprintf(out, "%s-%s: %s km\n", d.From, d.To, humanize.Commaf(float64(int64(d.Km+0.5))))
			}
			fmt.Fprintf(out, "Map: %s\n", view.Viewport)
			return nil
		},
	}
}

func newLocateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locate LAT LNG",
		Short: "Find the country whose center is nearest to a point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q: %w", args[0], err)
			}
			lng, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q: %w", args[1], err)
			}

			ctrl, err := opts.loadController(cmd)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			c, ok := ctrl.Nearest(lat, lng)
			if !ok {
				return fmt.Errorf("no country near (%v, %v)", lat, lng)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s geohash %s\n", c.Code, c.CommonName, c.Geohash(geohashPrecision))
			return nil
		},
	}
}

func newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link NAME",
		Short: "Print the Wikipedia link for a country name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), countryexplorer.WikipediaLink(strings.Join(args, " ")))
			return nil
		},
	}
}

func contains(countries []countryexplorer.Country, code string) bool {
	for _, c := range countries {
		if c.Code == code {
			return true
		}
	}
	return false
}
