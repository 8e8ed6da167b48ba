package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hivecadlanding/config"
	"hivecadlanding/internal/content"
	"hivecadlanding/internal/web"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load()
			if err != nil {
				return err
			}
			page, err := content.Load(s.ContentPath)
			if err != nil {
				return err
			}

			srv, err := web.New(page, newResolver(s), web.Options{
				Refresh:        s.Refresh,
				ResolveTimeout: s.ResolveTimeout,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx, s.Addr)
		},
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().Duration("refresh", 0, "Re-resolve downloads on this interval (0 resolves once at startup)")
	_ = viper.BindPFlag("http.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("http.refresh", cmd.Flags().Lookup("refresh"))

	return cmd
}
