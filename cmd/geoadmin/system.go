package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/geoadmin/internal/apiclient"
	"github.com/muurk/geoadmin/internal/config"
	"github.com/muurk/geoadmin/internal/discovery"
	"github.com/muurk/geoadmin/internal/logging"
	"github.com/muurk/geoadmin/internal/model"
	"github.com/muurk/geoadmin/internal/ui"
)

// System command flags
var (
	scanTimeout int
	saveFound   bool
)

func init() {
	rootCmd.AddCommand(statusCmd, discoverCmd, watchCmd, configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd, configServersCmd)

	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Scan timeout in seconds (default from config, 3)")
	discoverCmd.Flags().BoolVar(&saveFound, "save", false, "Remember the backends found in the config file")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the backend answers",
	Long: `Request the first country of the first page and report the round trip.

Useful to check --api-url before opening the interactive client.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		elapsed, err := newClient().Ping(cmd.Context())
		if err != nil {
			return failure(cmd, statusTitle(err), err)
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Backend is up", map[string]string{
			"API":     settings.API.URL,
			"Latency": elapsed.Round(time.Millisecond).String(),
		})
		return nil
	},
}

// statusTitle names what went wrong with a failed status check
func statusTitle(err error) string {
	switch {
	case apiclient.IsNetworkError(err):
		return "Backend unreachable"
	case apiclient.IsHTTPError(err):
		return "Backend answered with an error"
	case apiclient.IsParseError(err):
		return "Backend is not a geoadmin API"
	default:
		return "Status check failed"
	}
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find development backends on the network",
	Long: `Browse mDNS for geoadmin-server instances announcing ` + discovery.ServiceType + `.

Use --save to remember what was found in the config file, and
'geoadmin --discover' to point the client at a discovered backend.`,
	Example: `  # Quick scan
  geoadmin discover

  # Longer scan, remembering the results
  geoadmin discover --timeout 10 --save`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func runDiscover(cmd *cobra.Command, args []string) error {
	scanner := discovery.NewScanner()
	scanner.Timeout = settings.DiscoveryTimeout()
	if scanTimeout > 0 {
		scanner.Timeout = time.Duration(scanTimeout) * time.Second
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.Println(fmt.Sprintf("Scanning for backends (timeout: %s)...", scanner.Timeout))
	p.Newline()

	backends, err := scanner.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(backends) == 0 {
		p.PrintWarning("No backends found", map[string]string{
			"Service": discovery.ServiceType,
			"Hint":    "start one with 'geoadmin-server serve --announce'",
		})
		return nil
	}

	rows := make([][]string, 0, len(backends))
	for _, b := range backends {
		rows = append(rows, []string{b.Instance, b.BaseURL(), b.GetMetadata("version")})
		settings.RememberServer(b.Instance, b.BaseURL())
	}
	p.PrintTable([]string{"Instance", "URL", "Version"}, rows, fmt.Sprintf("Found %d backend(s)", len(backends)))

	if saveFound {
		if err := settings.Save(); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		p.Println("Saved to the config file.")
	}
	return nil
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream change events from a development backend",
	Long: `Subscribe to the /events feed of geoadmin-server and print every
create, update and delete as it happens. Stops on Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

// eventsURL turns the API base URL into the WebSocket URL of the event feed
func eventsURL(apiURL string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid API URL %q: %w", apiURL, err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http", "":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported API URL scheme %q", u.Scheme)
	}
	u.Path = "/events"
	u.RawQuery = ""
	return u.String(), nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	target, err := eventsURL(settings.API.URL)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialCtx, cancel := context.WithTimeout(ctx, settings.Timeout())
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, target, nil)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", target, err)
	}
	defer conn.Close()

	logging.LogConnection(target, "subscribed")
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", target)

	// Unblock ReadMessage when the user interrupts
	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	return streamEvents(ctx, conn, cmd)
}

func streamEvents(ctx context.Context, conn *websocket.Conn, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("event stream closed: %w", err)
		}

		var event model.ChangeEvent
		if err := json.Unmarshal(data, &event); err != nil {
			logging.Warn("Ignoring malformed event", zap.Error(err), zap.ByteString("data", data))
			continue
		}

		if outputFormat == "json" {
			fmt.Fprintln(out, string(data))
			continue
		}
		fmt.Fprintf(out, "%s  %s\n", event.At.Local().Format(time.TimeOnly), event)
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the settings file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, created, err := config.CreateDefaultConfig()
		if err != nil {
			return err
		}
		p := ui.NewPrinter(cmd.OutOrStdout())
		if !created {
			p.PrintWarning("Settings file already exists", map[string]string{"Path": path})
			return nil
		}
		p.PrintSuccess("Settings file created", map[string]string{"Path": path})
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Long: `Print the settings after the file, .env, environment variables and
flags have been applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat == "json" {
			return writeJSON(cmd, settings)
		}
		data, err := settings.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configServersCmd = &cobra.Command{
	Use:   "servers",
	Short: "List backends remembered by 'discover --save'",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := ui.NewPrinter(cmd.OutOrStdout())
		names := settings.ServerNames()
		if len(names) == 0 {
			p.PrintWarning("No remembered servers", map[string]string{
				"Hint": "run 'geoadmin discover --save'",
			})
			return nil
		}

		rows := make([][]string, 0, len(names))
		for _, name := range names {
			srv := settings.Servers[name]
			seen := "-"
			if !srv.LastSeen.IsZero() {
				seen = srv.LastSeen.Format(time.RFC3339)
			}
			rows = append(rows, []string{name, srv.URL, seen})
		}
		p.PrintTable([]string{"Instance", "URL", "Last seen"}, rows, fmt.Sprintf("%d server(s)", len(names)))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		_, statErr := os.Stat(path)
		exists := !errors.Is(statErr, os.ErrNotExist)
		fmt.Fprintf(cmd.OutOrStdout(), "%s (exists: %s)\n", path, strconv.FormatBool(exists))
		return nil
	},
}
