package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"hivecadlanding/config"
	"hivecadlanding/internal/downloads"
)

var (
	downloadPlatform string
	downloadOutput   string
)

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the newest release asset for one platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load()
			if err != nil {
				return err
			}

			p, err := pickPlatform(downloadPlatform)
			if err != nil {
				return err
			}

			resolver := newResolver(s)
			rctx, cancel := context.WithTimeout(cmd.Context(), s.ResolveTimeout)
			set := resolver.Resolve(rctx)
			cancel()

			if set.Fallback {
				return fmt.Errorf("could not list releases; download manually from %s", resolver.FallbackURL())
			}
			if !set.Available(p) {
				return fmt.Errorf("release %s has no %s asset (%s); see %s", set.Tag, p.Label(), p.Suffix(), resolver.FallbackURL())
			}

			assetURL := set.URL(p)
			out := downloadOutput
			if out == "" {
				out = filepath.Join(".", "downloads", set.FileName(p))
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()

			if err := resolver.Source().DownloadAsset(ctx, assetURL, out, resolver.Token()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Downloaded:", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&downloadPlatform, "platform", "", "One of windows, macos, linux, linux-deb (prompted when omitted)")
	cmd.Flags().StringVar(&downloadOutput, "output", "", "Output path (optional; defaults to ./downloads/<asset>)")

	return cmd
}

// pickPlatform parses name, or asks interactively when name is empty.
func pickPlatform(name string) (downloads.Platform, error) {
	if name != "" {
		p, ok := downloads.ParsePlatform(name)
		if !ok {
			return "", fmt.Errorf("unknown platform %q", name)
		}
		return p, nil
	}

	labels := make([]string, len(downloads.Platforms))
	for i, p := range downloads.Platforms {
		labels[i] = p.Label()
	}

	sel := promptui.Select{Label: "Platform", Items: labels}
	i, _, err := sel.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return "", errors.New("canceled")
		}
		return "", fmt.Errorf("select platform: %w", err)
	}
	return downloads.Platforms[i], nil
}
