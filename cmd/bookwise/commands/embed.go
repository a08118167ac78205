// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// embedSummary is the json output of the embed command.
type embedSummary struct {
	Source     string  `json:"source"`
	Items      int     `json:"items"`
	Reused     int     `json:"reused"`
	Computed   int     `json:"computed"`
	Persisted  bool    `json:"persisted"`
	Dimension  int     `json:"dimension"`
	Model      string  `json:"model"`
	DurationMS float64 `json:"duration_ms"`
}

// NewEmbedCmd creates the embed command.
func NewEmbedCmd(opts *globalOptions) *cobra.Command {
	var rebuild bool

	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Compute and persist catalog embeddings",
		Long: `Load the catalog, embed every item that lacks a vector of the configured
model's width and write the embedded catalog to EMBEDDINGS_PATH.

Running it again with nothing missing is a no-op.

Examples:
  bookwise embed
  bookwise embed --rebuild
  bookwise embed --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, models, err := bootstrap(cmd.Context(), cmd, opts, rebuild)
			if err != nil {
				return err
			}
			defer models.Close()

			sum := embedSummary{
				Source:     res.Source,
				Items:      res.Stats.Items,
				Reused:     res.Stats.Reused,
				Computed:   res.Stats.Computed,
				Persisted:  res.Stats.Persisted,
				Dimension:  res.Service.Dimension(),
				Model:      res.Service.ModelName(),
				DurationMS: float64(res.Stats.Duration.Microseconds()) / 1000,
			}

			out := cmd.OutOrStdout()
			if opts.format == FormatJSON {
				data, err := json.MarshalIndent(sum, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintf(out, "%s\n", data)
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Source:\t%s\n", sum.Source)
			fmt.Fprintf(w, "Model:\t%s (%d dimensions)\n", sum.Model, sum.Dimension)
			fmt.Fprintf(w, "Items:\t%d\n", sum.Items)
			fmt.Fprintf(w, "Reused:\t%d\n", sum.Reused)
			fmt.Fprintf(w, "Computed:\t%d\n", sum.Computed)
			fmt.Fprintf(w, "Persisted:\t%t\n", sum.Persisted)
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Ignore persisted vectors and embed the source catalog again")

	return cmd
}
