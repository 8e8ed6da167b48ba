package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hivecadlanding/config"
	"hivecadlanding/internal/content"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Print the installation command shown in the install dialog",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load()
			if err != nil {
				return err
			}
			page, err := content.Load(s.ContentPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), page.Install.Command)
			return nil
		},
	}
}
