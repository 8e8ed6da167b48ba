package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hivecadlanding/config"
	"hivecadlanding/internal/downloads"
)

var resolveJSON bool

type resolveOutput struct {
	Tag       string            `json:"tag"`
	Fallback  bool              `json:"fallback"`
	Downloads map[string]string `json:"downloads"`
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the download links of the newest release",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), s.ResolveTimeout)
			defer cancel()

			set := newResolver(s).Resolve(ctx)

			if resolveJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resolveOutput{Tag: set.Tag, Fallback: set.Fallback, Downloads: set.Map()})
			}
			return printDownloadSet(cmd, set)
		},
	}

	cmd.Flags().BoolVar(&resolveJSON, "json", false, "Print as JSON")

	return cmd
}

func printDownloadSet(cmd *cobra.Command, set downloads.DownloadSet) error {
	out := cmd.OutOrStdout()
	switch {
	case set.Fallback:
		fmt.Fprintln(out, "Release lookup failed; linking the releases page.")
	case set.Tag != "":
		fmt.Fprintln(out, "Release:", set.Tag)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, p := range downloads.Platforms {
		u := set.URL(p)
		if u == downloads.Placeholder {
			u = "(not available)"
		}
		fmt.Fprintf(tw, "%s\t%s\n", p, u)
	}
	return tw.Flush()
}
