package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := opts.openApp(ctx, false)
			if err != nil {
				return err
			}
			defer closeApp(a)

			if port != "" {
				a.Config.Server.Port = port
			}
			if !a.Config.Log.Development {
				gin.SetMode(gin.ReleaseMode)
			}
			return a.Serve(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides config)")
	return cmd
}
