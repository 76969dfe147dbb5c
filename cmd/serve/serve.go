// Package serve runs the segmentation dashboard and JSON API
package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/customer-grouper/cmd/root"

	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the customer segmentation dashboard",
	Long: `Serve the customer segmentation dashboard and JSON API.

Routes:
  GET  /                 dashboard form
  POST /predict          dashboard form submit
  POST /api/v1/predict   JSON prediction (?project=true adds PCA coordinates)
  GET  /api/v1/segments  segment catalog
  GET  /healthz          health check
  GET  /metrics          Prometheus metrics

Example:
  customer-grouper serve --addr :8080`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from server.addr)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := root.MustContainer(ctx)
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close container")
		}
	}()

	srv, err := c.NewServer()
	if err != nil {
		root.Log.Fatalf("Failed to create server: %v", err)
	}

	listen := ListenAddr(addr, c.GetConfig().Server.Addr)
	if err := srv.ListenAndServe(ctx, listen); err != nil {
		root.Log.Fatalf("Server stopped: %v", err)
	}
}

// ListenAddr prefers the flag value over the configured address.
func ListenAddr(flag, configured string) string {
	if flag != "" {
		return flag
	}
	return configured
}
