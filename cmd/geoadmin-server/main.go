// Geoadmin-server is a development backend for the geoadmin client.
//
// It serves the Country/State REST API from memory, optionally seeded with
// sample data, streams change events over a WebSocket at /events, and can
// announce itself via mDNS so 'geoadmin discover' finds it.
//
// Usage:
//
//	geoadmin-server serve [flags]
//
// See 'geoadmin-server serve --help' for available options.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muurk/geoadmin/internal/devserver"
	"github.com/muurk/geoadmin/internal/logging"
	"github.com/muurk/geoadmin/internal/version"
)

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "geoadmin-server",
	Short: "Geoadmin Development Backend",
	Long: `An in-memory implementation of the Country/State REST API.

Intended for trying out and testing the geoadmin client without the real
service. Data lives in memory and is lost on exit.`,
	Version: version.Version,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command flags
var (
	host     string
	port     int
	seed     bool
	announce bool
	instance string
	logLevel string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the backend",
	Long: `Start the REST API.

Endpoints:
  GET    /country?pageNo=&pageSize=   one page of countries (no params: all, as an array)
  POST   /country                     create {name}
  PUT    /country/:id                 update {name}
  DELETE /country/:id                 delete (409 while states reference it)
  GET    /state?pageNo=&pageSize=     one page of states with their country embedded
  POST   /state                       create {name, countryId}
  PUT    /state/:id                   update {name, countryId}
  DELETE /state/:id                   delete
  GET    /events                      WebSocket feed of changes
  GET    /health                      liveness and record counts`,
	Example: `  # Start on :8080 with sample data
  geoadmin-server serve

  # Empty store on another port, announced on the LAN
  geoadmin-server serve --port 9090 --seed=false --announce

  # Verbose request logging
  geoadmin-server serve --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&host, "host", "", "Listen address (empty = all interfaces)")
	serveCmd.Flags().IntVar(&port, "port", 8080, "Listen port")
	serveCmd.Flags().BoolVar(&seed, "seed", true, "Load sample countries and states")
	serveCmd.Flags().BoolVar(&announce, "announce", false, "Announce the API via mDNS")
	serveCmd.Flags().StringVar(&instance, "instance", "", "mDNS instance name (default geoadmin-<hostname>)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}

	srv, err := devserver.New(&devserver.Config{
		Host:     host,
		Port:     port,
		Seed:     seed,
		Announce: announce,
		Instance: instance,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("geoadmin-server %s\n", version.Full())
	},
}
