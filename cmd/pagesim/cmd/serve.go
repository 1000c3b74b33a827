package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/monitoring"
)

func newServeCmd(opts *simOptions) *cobra.Command {
	var (
		port        int
		openBrowser bool
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator over HTTP.",
		Long: "`serve` builds a simulator and exposes it through the " +
			"monitoring API until interrupted. Runs are triggered with " +
			"POST /api/run/{policy}.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := buildSimulator(cmd, opts)
			if err != nil {
				return err
			}

			monitor := monitoring.NewMonitor()
			if cmd.Flags().Changed("port") {
				monitor = monitor.WithPortNumber(port)
			}

			monitor.RegisterSimulator(s)

			url, err := monitor.StartServer()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), url)

			if openBrowser {
				err = browser.OpenURL(url + "/api/stream")
				if err != nil {
					fmt.Fprintf(os.Stderr, "Cannot open browser: %v\n", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			<-ctx.Done()

			return nil
		},
	}

	serveCmd.Flags().IntVar(&port, "port", 0,
		"Port of the monitoring server. A random port is used when not set.")
	serveCmd.Flags().BoolVar(&openBrowser, "open", false,
		"Open the served stream in a browser.")

	return serveCmd
}
