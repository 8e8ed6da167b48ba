package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"hivecadlanding/config"
	"hivecadlanding/internal/content"
	"hivecadlanding/internal/downloads"
	"hivecadlanding/internal/logger"
	"hivecadlanding/internal/releases"
	"hivecadlanding/tui"
)

var rootCmd = &cobra.Command{
	Use:          "hivecad",
	Short:        "The HiveCAD landing page, in the browser or the terminal.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load()
		if err != nil {
			return err
		}
		page, err := content.Load(s.ContentPath)
		if err != nil {
			return err
		}
		if err := tui.Run(page, newResolver(s), s.ResolveTimeout); err != nil {
			logger.Log.Error("run tui", "err", err)
			return err
		}
		return nil
	},
}

func Execute() {
	if err := config.Init(); err != nil {
		logger.Log.Error("load config", "err", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newReleasesCmd())
	rootCmd.AddCommand(newDownloadCmd())
	rootCmd.AddCommand(newInstallCmd())
}

func newResolver(s config.Settings) *downloads.Resolver {
	return downloads.NewResolver(releases.NewGitHubSource(s.APIURL), s.Owner, s.Repo, s.Token)
}
