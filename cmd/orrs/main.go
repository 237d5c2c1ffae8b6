package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orrs-rail/orrs-cli/internal/api"
	"github.com/orrs-rail/orrs-cli/internal/auth"
	"github.com/orrs-rail/orrs-cli/internal/cache"
	"github.com/orrs-rail/orrs-cli/internal/config"
	"github.com/orrs-rail/orrs-cli/internal/logging"
	"github.com/orrs-rail/orrs-cli/internal/models"
	"github.com/orrs-rail/orrs-cli/internal/output"
	"github.com/orrs-rail/orrs-cli/internal/stations"
	"github.com/orrs-rail/orrs-cli/internal/suggest"
	"github.com/orrs-rail/orrs-cli/internal/tui"
	"github.com/orrs-rail/orrs-cli/internal/validate"
)

var version = "0.1.0"

// errReported marks failures that were already printed to the user.
var errReported = errors.New("reported")

func main() {
	ctx, stop := output.NotifyContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()

	if err != nil {
		if !errors.Is(err, errReported) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "orrs",
	Short: "Terminal client for the Online Railway Reservation System",
	Long: `orrs is a terminal client for the Online Railway Reservation System.

Features:
  - Full-screen train search with station autocomplete
  - Station lookup against the backend, a local JSON file or the builtin list
  - Train search by station names and journey date
  - Station administration (list, add, update, status, delete)
  - JSON output for scripting
  - Response caching for faster repeated queries

Quick Start:
  1. Launch TUI:               orrs (or orrs tui)
  2. Find a station:           orrs stations mumbai
  3. Search trains:            orrs search Mumbai Delhi --date 20/10/2026
  4. Manage stations:          orrs admin stations list
  5. Check your token:         orrs whoami`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is provided, launch TUI
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagConfig   string
	flagJSON     bool
	flagRawJSON  bool
	flagColor    string
	flagNoCache  bool
	flagLogLevel string
)

// Stations flags
var (
	flagLimit   int
	flagFile    string
	flagWatch   bool
	flagOffline bool
	flagOptions bool
)

// Search flags
var flagDate string

// cfg is the configuration loaded before any command runs.
var cfg config.Config

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(stationsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(cacheCmd)

	rootCmd.PersistentPreRunE = setup

	// Global flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/orrs/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagRawJSON, "raw-json", false, "Output raw API response")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Disable response caching")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Stations-specific flags
	stationsCmd.Flags().IntVarP(&flagLimit, "limit", "n", 0, "Maximum number of stations to show (default from config)")
	stationsCmd.Flags().StringVarP(&flagFile, "file", "f", "", "Read stations from a JSON file as well")
	stationsCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Watch the stations file and redraw on change")
	stationsCmd.Flags().BoolVar(&flagOffline, "offline", false, "Do not ask the backend")
	stationsCmd.Flags().BoolVar(&flagOptions, "options", false, "Output value/label pairs for select inputs as JSON")

	// Search-specific flags
	searchCmd.Flags().StringVarP(&flagDate, "date", "d", "", "Journey date (DD/MM/YYYY or YYYY-MM-DD, default today)")
	searchCmd.Flags().BoolVar(&flagOffline, "offline", false, "Resolve station names without asking the backend")
}

// setup loads the configuration and starts logging. While the TUI owns the
// terminal, logs go to a file.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = loaded

	level := flagLogLevel
	if level == "" {
		level = os.Getenv(logging.LogLevelEnvVar)
	}
	if level == "" {
		level = cfg.Log.Level
	}

	logFile := cfg.Log.File
	if logFile == "" && (cmd.Name() == "tui" || !cmd.HasParent()) {
		logFile = logging.DefaultLogFile()
	}
	if err := logging.Initialize(logging.Options{Level: level, File: logFile}); err != nil {
		return err
	}
	logging.Debug("configuration loaded", zap.String("base_url", cfg.API.BaseURL), zap.String("command", cmd.CommandPath()))
	return nil
}

// createClient creates an API client with common options
func createClient() (*api.Client, error) {
	opts := []api.ClientOption{
		api.WithLogger(logging.GetLogger()),
		api.WithBaseURL(cfg.API.BaseURL),
		api.WithTimeout(cfg.API.Timeout),
		api.WithToken(cfg.API.Token),
	}

	// Enable caching unless disabled
	if cfg.Cache.Enabled && !flagNoCache {
		opts = append(opts, api.WithDefaultCache(cfg.Cache.Dir, cfg.Cache.TTL))
	}

	client, err := api.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

// stationSources lists where station candidates come from. The builtin
// catalogue is used when neither the backend nor a file is available.
func stationSources(client *api.Client, file string, offline bool) []stations.Source {
	var srcs []stations.Source
	if !offline {
		srcs = append(srcs, stations.RemoteSource{Client: client})
	}
	if file != "" {
		srcs = append(srcs, stations.FileSource{Path: file})
	}
	if len(srcs) == 0 {
		srcs = append(srcs, stations.BuiltinSource{})
	}
	return srcs
}

// getColors returns the colors for the --color flag
func getColors() *output.Colors {
	return output.NewColors(output.ParseColorMode(flagColor))
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive full-screen TUI",
	Long: `Launch an interactive full-screen train search.

Keyboard:
  Tab / Shift+Tab  Move between From, To, Date and the results
  Up/Down          Move through suggestions (wraps around)
  Enter            Pick the highlighted suggestion, or search
  Esc              Close the suggestions
  Ctrl+S           Swap From and To
  Ctrl+R           Reload stations
  j/k, PgUp/PgDn   Scroll results
  Ctrl+C           Quit

The mouse picks suggestions too; clicking elsewhere closes the list.`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := createClient()
	if err != nil {
		return err
	}

	src := stations.NewCached(stations.Combined(stationSources(client, cfg.Stations.File, cfg.Stations.Offline)))

	var changes <-chan struct{}
	if cfg.Stations.Watch && cfg.Stations.File != "" {
		changes, err = stations.NewWatcher(cfg.Stations.File, 0).Watch(ctx)
		if err != nil {
			return err
		}
	}

	model := tui.New(tui.Options{
		Client:  client,
		Source:  src,
		Changes: changes,
		Limit:   cfg.Stations.Limit,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

var stationsCmd = &cobra.Command{
	Use:   "stations [query]",
	Short: "List stations matching a query",
	Long: `List stations whose city, name or code contains the query.

Matching ignores case. Without a query the first stations are listed.
Stations come from the backend, plus the file given with --file. With
--offline and no file the builtin list is used.

Examples:
  orrs stations mumbai
  orrs stations --limit 5 del
  orrs stations --offline --file stations.json
  orrs stations --options del
  orrs stations --file stations.json --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStations,
}

func runStations(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	limit := flagLimit
	if limit <= 0 {
		limit = cfg.Stations.Limit
	}
	file := flagFile
	if file == "" {
		file = cfg.Stations.File
	}

	client, err := createClient()
	if err != nil {
		return err
	}

	// Raw JSON output
	if flagRawJSON && !flagOffline {
		raw, err := client.GetStationsRaw(ctx)
		if err != nil {
			return err
		}
		return printPrettyJSON(raw)
	}

	srcs := stationSources(client, file, flagOffline || cfg.Stations.Offline)

	if flagWatch {
		if file == "" {
			return errors.New("--watch needs a stations file (--file or stations.file)")
		}
		return runStationsWatch(ctx, srcs, file, query, limit)
	}

	list, err := stations.FetchAll(ctx, srcs...)
	if err != nil {
		return err
	}
	matches := suggest.Filter(query, list, limit)

	if flagOptions {
		opts := make([]models.StationOption, 0, len(matches))
		for _, st := range matches {
			opts = append(opts, st.Option())
		}
		return printJSON(opts)
	}
	if flagJSON {
		return printJSON(matches)
	}
	output.RenderStations(os.Stdout, matches, output.TableOptions{Colors: getColors()})
	return nil
}

// stationBatch is one load of the watched sources.
type stationBatch struct {
	gen  uint64
	list []models.Station
	err  error
}

// runStationsWatch redraws the matches whenever the stations file changes.
// A slow load that is overtaken by a newer one is never drawn.
func runStationsWatch(ctx context.Context, srcs []stations.Source, file, query string, limit int) error {
	changes, err := stations.NewWatcher(file, 0).Watch(ctx)
	if err != nil {
		return err
	}

	src := stations.NewCached(stations.Combined(srcs))
	loader := &stations.Loader{}
	results := make(chan stationBatch)

	load := func() {
		gen := loader.Begin()
		go func() {
			list, err := src.Stations(ctx)
			select {
			case results <- stationBatch{gen: gen, list: list, err: err}:
			case <-ctx.Done():
			}
		}()
	}

	screen := output.NewScreen(os.Stdout)
	screen.Begin()
	defer screen.End()

	colors := getColors()
	load()
	for {
		select {
		case <-ctx.Done():
			return nil

		case _, ok := <-changes:
			if !ok {
				return nil
			}
			src.Invalidate()
			load()

		case b := <-results:
			if !loader.Accept(b.gen) {
				logging.Debug("dropping stale station batch", zap.Uint64("gen", b.gen))
				continue
			}
			header := fmt.Sprintf("Last update: %s | Watching %s | Press Ctrl+C to exit",
				time.Now().Format("15:04:05"), file)
			screen.Redraw(header, func(w io.Writer) {
				if b.err != nil {
					_, _ = fmt.Fprintf(w, "Error: %v\n", b.err)
					return
				}
				output.RenderStations(w, suggest.Filter(query, b.list, limit), output.TableOptions{Colors: colors})
			})
		}
	}
}

var searchCmd = &cobra.Command{
	Use:   "search <from> <to>",
	Short: "Search trains between two stations",
	Long: `Search trains between two stations on a journey date.

Both stations are matched exactly (ignoring case) against the city, the
station code or the station name. Use 'orrs stations <query>' to find them.

Examples:
  orrs search Mumbai Delhi
  orrs search BCT NDLS --date 20/10/2026
  orrs search "Howrah" "Chennai" -d 2026-10-20 --json`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := createClient()
	if err != nil {
		return err
	}

	list, err := stations.FetchAll(ctx, stationSources(client, cfg.Stations.File, flagOffline || cfg.Stations.Offline)...)
	if err != nil {
		return err
	}
	index := stations.NewIndex(list)

	date := flagDate
	if date == "" {
		date = time.Now().Format("02/01/2006")
	}

	in := validate.SearchInput{Date: date}
	from, fromOK := index.Lookup(args[0])
	if fromOK {
		in.From = from.DisplayValue()
	}
	to, toOK := index.Lookup(args[1])
	if toOK {
		in.To = to.DisplayValue()
	}

	if err := validate.New(nil).Search(in); err != nil {
		var fe validate.FieldErrors
		if errors.As(err, &fe) {
			output.RenderFieldErrors(os.Stderr, fe, output.TableOptions{Colors: getColors()})
			return errReported
		}
		return err
	}

	day, _ := validate.ParseDate(date)
	req := models.SearchRequest{
		FromStation: in.From,
		ToStation:   in.To,
		JourneyDate: validate.FormatDate(day),
	}

	// Raw JSON output
	if flagRawJSON {
		raw, err := client.SearchTrainsRaw(ctx, req)
		if err != nil {
			return err
		}
		return printPrettyJSON(raw)
	}

	trains, err := client.SearchTrains(ctx, req)
	if err != nil && !errors.Is(err, api.ErrNoResults) {
		return err
	}

	if flagJSON {
		if trains == nil {
			trains = []models.TrainResult{}
		}
		return printJSON(trains)
	}

	colors := getColors()
	_, _ = fmt.Fprintln(os.Stdout, colors.Header("%s -> %s on %s", from.Label(), to.Label(), day.Format("Mon 02 Jan 2006")))
	_, _ = fmt.Fprintln(os.Stdout)
	output.RenderTrains(os.Stdout, trains, output.TableOptions{Colors: colors})
	return nil
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the user in the configured token",
	Long: `Decode the configured session token and show who it belongs to.

The token is read from api.token in the config file or ORRS_TOKEN. The
signature is not checked; only the backend decides what the token allows.`,
	Args: cobra.NoArgs,
	RunE: runWhoami,
}

func runWhoami(_ *cobra.Command, _ []string) error {
	if cfg.API.Token == "" {
		return fmt.Errorf("no token configured: set api.token or %s", config.EnvToken)
	}
	claims, err := auth.Decode(cfg.API.Token)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(claims)
	}

	c := getColors()
	_, _ = fmt.Fprintf(os.Stdout, "%s %s\n", c.Muted("User:   "), claims.Email())
	_, _ = fmt.Fprintf(os.Stdout, "%s %s\n", c.Muted("Role:   "), strings.TrimPrefix(claims.Role, "ROLE_"))
	if claims.IsAdmin() {
		_, _ = fmt.Fprintf(os.Stdout, "%s %s\n", c.Muted("Access: "), "admin commands available")
	}
	if exp := claims.Expiry(); !exp.IsZero() {
		_, _ = fmt.Fprintf(os.Stdout, "%s %s\n", c.Muted("Expires:"), exp.Local().Format("2006-01-02 15:04"))
	}
	if claims.Expired(time.Now()) {
		_, _ = fmt.Fprintln(os.Stdout, c.Error("Token has expired"))
	}
	return nil
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or empty the response cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the cache location and size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fc, err := openCache()
		if err != nil {
			return err
		}
		st, err := fc.Stats()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(st)
		}
		_, _ = fmt.Fprintf(os.Stdout, "%s\n%d entries (%d expired), %d bytes\n", st.Dir, st.Entries, st.Expired, st.Bytes)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached response",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fc, err := openCache()
		if err != nil {
			return err
		}
		n, err := fc.Clear()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Removed %d cached responses\n", n)
		return nil
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove expired cached responses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fc, err := openCache()
		if err != nil {
			return err
		}
		n, err := fc.Prune()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Removed %d expired responses\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd, cacheClearCmd, cachePruneCmd)
}

func openCache() (*cache.FileCache, error) {
	dir := cfg.Cache.Dir
	if dir == "" {
		dir = cache.DefaultCacheDir()
	}
	return cache.NewFileCache(dir, cfg.Cache.TTL)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPrettyJSON(data []byte) error {
	var prettyJSON interface{}
	if err := json.Unmarshal(data, &prettyJSON); err != nil {
		// If we can't parse it, just print raw
		fmt.Println(string(data))
		return err
	}
	return printJSON(prettyJSON)
}
