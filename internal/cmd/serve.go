package cmd

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/atikulmunna/hitcount/internal/server"
	"github.com/atikulmunna/hitcount/internal/source"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve file [file ...]",
		Short: "Serve reports for the given files over HTTP",
		Long: `Start an HTTP server that reports on the given files. Every request
analyzes the files again, so reports always reflect their current content.

Endpoints:
  GET /healthz
  GET /api/reports              all files, JSON
  GET /api/reports/:index       one file, JSON (or ?format=text)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAnalyzer(v)
			if err != nil {
				return err
			}
			paths, err := source.Expand(args)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			addr := net.JoinHostPort(v.GetString("serve.host"), v.GetString("serve.port"))
			return server.New(a, paths, addr).Start(ctx)
		},
	}

	cmd.Flags().String("host", "localhost", "address to listen on")
	cmd.Flags().StringP("port", "p", "8080", "port to listen on")
	_ = v.BindPFlag("serve.host", cmd.Flags().Lookup("host"))
	_ = v.BindPFlag("serve.port", cmd.Flags().Lookup("port"))

	return cmd
}
