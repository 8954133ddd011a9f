// Geoadmin is an admin client for the Country/State reference data API.
//
// Running it without arguments opens the interactive screens: "/" manages
// countries and "/state" manages states, each with paging, a create/edit
// form, detail view, and PDF/XLSX export of the loaded page.
//
// Every screen operation is also available as a one-shot command for
// scripting.
//
// Usage:
//
//	geoadmin [command] [flags]
//
// See 'geoadmin --help' for available commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/geoadmin/internal/apiclient"
	"github.com/muurk/geoadmin/internal/config"
	"github.com/muurk/geoadmin/internal/discovery"
	"github.com/muurk/geoadmin/internal/logging"
	"github.com/muurk/geoadmin/internal/tui"
	"github.com/muurk/geoadmin/internal/ui"
	"github.com/muurk/geoadmin/internal/version"
)

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Persistent flags
var (
	apiURL       string
	pageSize     int
	exportDir    string
	logLevel     string
	outputFormat string
	useDiscovery bool
	startRoute   string
)

// settings is loaded once per invocation by the root pre-run hook
var settings *config.Settings

var rootCmd = &cobra.Command{
	Use:   "geoadmin",
	Short: "Country/State Admin Client",
	Long: `An admin client for the Country/State reference data API.

Running without a command opens the interactive screens:
  /        Country management
  /state   State management

Each screen lists one page of records and lets you add, edit, delete and
view them, and export the loaded page to PDF or Excel.`,
	Example: `  # Open the Country screen
  geoadmin

  # Open the State screen against another backend
  geoadmin --route /state --api-url http://10.0.0.5:8080

  # Find a development backend on the LAN and use it
  geoadmin --discover`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE:              runInteractive,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "REST API base URL (default from config, "+config.DefaultAPIURL+")")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0, "Records per page (default from config, 5)")
	rootCmd.PersistentFlags().StringVar(&exportDir, "export-dir", "", "Directory for PDF/XLSX exports (default from config, .)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, json)")
	rootCmd.PersistentFlags().BoolVar(&useDiscovery, "discover", false, "Find the backend via mDNS instead of the configured URL")
	rootCmd.Flags().StringVar(&startRoute, "route", "", "Screen to open (/ or /state)")

	rootCmd.AddCommand(versionCmd)
}

// loadSettings layers the settings file, .env, environment and flags, then
// starts logging. The interactive client logs to a file; commands log to
// stderr so stdout stays clean for piping.
func loadSettings(cmd *cobra.Command, args []string) error {
	s, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		s.API.URL = apiURL
	}
	if flags.Changed("page-size") {
		if pageSize <= 0 {
			return fmt.Errorf("--page-size must be positive, got %d", pageSize)
		}
		s.UI.PageSize = pageSize
	}
	if flags.Changed("export-dir") {
		s.Export.Dir = exportDir
	}
	if flags.Changed("log-level") {
		s.Logging.Level = logLevel
	}

	switch outputFormat {
	case "detailed", "compact", "json":
	default:
		return fmt.Errorf("unknown --format %q (use detailed, compact or json)", outputFormat)
	}

	level, output, err := logTarget(cmd, s)
	if err != nil {
		return err
	}
	if err := logging.InitializeWithOutput(level, output); err != nil {
		return err
	}

	if (useDiscovery || s.Discovery.AutoDiscover) && !flags.Changed("api-url") {
		if err := discoverBackend(cmd.Context(), s); err != nil {
			return err
		}
	}

	settings = s
	logging.Debug("Settings loaded",
		zap.String("api_url", s.API.URL),
		zap.Int("page_size", s.UI.PageSize),
		zap.String("export_dir", s.Export.Dir))
	return nil
}

// logTarget picks the log level and output for cmd. The root command runs
// the full-screen client, so it logs errors to a file by default.
func logTarget(cmd *cobra.Command, s *config.Settings) (level, output string, err error) {
	if cmd.HasParent() {
		return s.Logging.Level, "stderr", nil
	}
	output, err = s.LogFilePath()
	if err != nil {
		return "", "", err
	}
	level = s.Logging.Level
	if level == "" {
		level = "error"
	}
	return level, output, nil
}

// discoverBackend points the settings at a backend found on the LAN
func discoverBackend(ctx context.Context, s *config.Settings) error {
	scanner := discovery.NewScanner()
	scanner.Timeout = s.DiscoveryTimeout()

	fmt.Fprintf(os.Stderr, "Looking for a backend on the network (timeout: %s)...\n", scanner.Timeout)
	backends, err := scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	switch len(backends) {
	case 0:
		return fmt.Errorf("no backend found. Use --api-url to specify one")
	case 1:
	default:
		fmt.Fprintf(os.Stderr, "Found %d backends, using the first:\n", len(backends))
		for i, b := range backends {
			fmt.Fprintf(os.Stderr, "%d. %s\n", i+1, b)
		}
	}

	b := backends[0]
	s.API.URL = b.BaseURL()
	fmt.Fprintf(os.Stderr, "Using %s\n\n", b)
	return nil
}

// newClient builds an API client from the loaded settings
func newClient() *apiclient.Client {
	client := apiclient.NewClient(settings.API.URL)
	client.SetTimeout(settings.Timeout())
	return client
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
		return fmt.Errorf("the interactive client needs a terminal; use a subcommand such as 'geoadmin country list' instead")
	}

	routeName := startRoute
	if !cmd.Flags().Changed("route") {
		routeName = settings.UI.StartRoute
	}
	route, err := tui.ParseRoute(routeName)
	if err != nil {
		return err
	}

	logging.Info("Starting interactive client", zap.String("route", string(route)), zap.String("api_url", settings.API.URL))

	err = tui.Run(route, tui.Options{
		Client:    newClient(),
		PageSize:  settings.UI.PageSize,
		ExportDir: settings.Export.Dir,
	})
	if err != nil {
		return fmt.Errorf("interactive client error: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "geoadmin "+version.Full())
	},
}

// troubleshooting splits an error hint into bullet points for a result box
func troubleshooting(err error) []string {
	var tips []string
	for _, line := range strings.Split(apiclient.Hint(err), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "•"))
		if line == "" || line == "Troubleshooting:" {
			continue
		}
		tips = append(tips, line)
	}
	return tips
}

// failure prints a failure box for err and returns it wrapped for cobra
func failure(cmd *cobra.Command, title string, err error) error {
	p := ui.NewPrinter(cmd.ErrOrStderr())
	p.PrintError(title, errors.New(apiclient.ShortMessage(err)), troubleshooting(err))
	return fmt.Errorf("%s: %w", strings.ToLower(title), err)
}
