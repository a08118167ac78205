// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/bookwise/internal/recommend"
)

// NewQueryCmd creates the query command.
func NewQueryCmd(opts *globalOptions) *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "query <text>...",
		Short: "Recommend books for a free-text query",
		Long: `Embed the query and print the closest catalog items, best first.

Several arguments are joined into one query, the way the questionnaire
answers are combined by the web frontend.

Examples:
  bookwise query "a desert planet with political intrigue"
  bookwise query --top-n 10 "slow burn romance" "set in Regency England"
  bookwise query --format json "cyberpunk heist"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if topN < 0 {
				return fmt.Errorf("--top-n must not be negative, got %d", topN)
			}
			query := recommend.ComposeQuery(args...)

			res, models, err := bootstrap(cmd.Context(), cmd, opts, false)
			if err != nil {
				return err
			}
			defer models.Close()

			n := topN
			if !cmd.Flags().Changed("top-n") {
				n = res.Service.DefaultTopN()
			}

			recs, err := res.Service.Recommend(cmd.Context(), query, n)
			if err != nil {
				return err
			}
			return printRecommendations(cmd.OutOrStdout(), opts.format, recs)
		},
	}

	cmd.Flags().IntVarP(&topN, "top-n", "n", recommend.DefaultTopN, "Number of recommendations")

	return cmd
}

func printRecommendations(out io.Writer, format string, recs []recommend.Recommendation) error {
	if format == FormatJSON {
		if recs == nil {
			recs = []recommend.Recommendation{}
		}
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", data)
		return nil
	}

	if len(recs) == 0 {
		fmt.Fprintln(out, "No recommendations.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "#\tSCORE\tTITLE\tAUTHORS\n")
	fmt.Fprintf(w, "-\t-----\t-----\t-------\n")
	for i, r := range recs {
		fmt.Fprintf(w, "%d\t%.3f\t%s\t%s\n",
			i+1,
			r.Score,
			truncate(r.Title, 50),
			truncate(strings.TrimPrefix(r.Description, "By "), 30))
	}
	return w.Flush()
}

// truncate shortens s to maxLen runes, marking the cut with "...".
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
