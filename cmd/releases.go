package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hivecadlanding/config"
	"hivecadlanding/internal/releases"
	"hivecadlanding/internal/version"
)

var releasesLimit int

func newReleasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "releases",
		Short: "List releases newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), s.ResolveTimeout)
			defer cancel()

			rels, err := releases.NewGitHubSource(s.APIURL).ListReleases(ctx, s.Owner, s.Repo, s.Token)
			if err != nil {
				return err
			}
			if releasesLimit > 0 && len(rels) > releasesLimit {
				rels = rels[:releasesLimit]
			}
			return printReleases(cmd, rels)
		},
	}

	cmd.Flags().IntVar(&releasesLimit, "limit", 10, "Maximum number of releases to list (0 for all)")

	return cmd
}

func printReleases(cmd *cobra.Command, rels []releases.Release) error {
	if len(rels) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No releases published.")
		return nil
	}

	tags := make([]string, len(rels))
	for i, r := range rels {
		tags[i] = r.TagName
	}
	highest := version.Latest(tags)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tCREATED\tASSETS\tNOTES")
	for i, r := range rels {
		var notes []string
		if i == 0 {
			notes = append(notes, "newest")
		}
		if i == highest {
			notes = append(notes, "highest version")
		}
		if r.Draft {
			notes = append(notes, "draft")
		}
		if r.Prerelease {
			notes = append(notes, "prerelease")
		}

		created := "-"
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.TagName, created, len(r.Assets), strings.Join(notes, ", "))
	}
	return tw.Flush()
}
