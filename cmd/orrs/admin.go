package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orrs-rail/orrs-cli/internal/api"
	"github.com/orrs-rail/orrs-cli/internal/logging"
	"github.com/orrs-rail/orrs-cli/internal/models"
	"github.com/orrs-rail/orrs-cli/internal/output"
	"github.com/orrs-rail/orrs-cli/internal/stations"
	"github.com/orrs-rail/orrs-cli/internal/suggest"
	"github.com/orrs-rail/orrs-cli/internal/validate"
)

// adminPageSize is the number of stations per page of the admin list.
const adminPageSize = 10

// Admin flags
var (
	flagPage      int
	flagYes       bool
	flagCode      string
	flagName      string
	flagCity      string
	flagState     string
	flagZone      string
	flagPlatforms int
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administration commands (admin token required)",
	Long: `Administration commands. They need a token with the admin role,
set through api.token in the config file or ORRS_TOKEN.`,
}

var adminStationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "Manage stations",
}

var adminListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List stations with their ID and status",
	Long: `List stations with their ID and status, ten per page.

The query matches city, name or code ignoring case. A "!" after the
status means the backend sent activity flags that disagree.

Examples:
  orrs admin stations list
  orrs admin stations list --page 2
  orrs admin stations list mumbai`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdminList,
}

var adminShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one station with all activity flags",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminShow,
}

var adminAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a station",
	Long: `Add a station.

Examples:
  orrs admin stations add --code PUNE --name "Pune Junction" --city Pune --platforms 6`,
	Args: cobra.NoArgs,
	RunE: runAdminAdd,
}

var adminUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a station",
	Long: `Update a station. Fields without a flag keep their current value.

Examples:
  orrs admin stations update 12 --platforms 8
  orrs admin stations update 12 --name "Pune Jn" --zone CR`,
	Args: cobra.ExactArgs(1),
	RunE: runAdminUpdate,
}

var adminStatusCmd = &cobra.Command{
	Use:       "status <id> <ACTIVE|INACTIVE>",
	Short:     "Activate or deactivate a station",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{models.StatusActive, models.StatusInactive},
	RunE:      runAdminStatus,
}

var adminDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a station",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminDelete,
}

func init() {
	adminCmd.AddCommand(adminStationsCmd)
	adminStationsCmd.AddCommand(adminListCmd, adminShowCmd, adminAddCmd, adminUpdateCmd, adminStatusCmd, adminDeleteCmd)

	adminListCmd.Flags().IntVarP(&flagPage, "page", "p", 1, "Page to show")
	adminDeleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Do not ask for confirmation")

	for _, c := range []*cobra.Command{adminAddCmd, adminUpdateCmd} {
		c.Flags().StringVar(&flagCode, "code", "", "Station code")
		c.Flags().StringVar(&flagName, "name", "", "Station name")
		c.Flags().StringVar(&flagCity, "city", "", "City")
		c.Flags().StringVar(&flagState, "state", "", "State")
		c.Flags().StringVar(&flagZone, "zone", "", "Railway zone")
		c.Flags().IntVar(&flagPlatforms, "platforms", 0, "Number of platforms (1-50)")
	}
}

func runAdminList(cmd *cobra.Command, args []string) error {
	client, err := createClient()
	if err != nil {
		return err
	}
	list, err := client.ListAdminStations(cmd.Context())
	if err != nil {
		return err
	}

	if len(args) == 1 {
		q := strings.ToLower(strings.TrimSpace(args[0]))
		matched := list[:0:0]
		for _, s := range list {
			if suggest.MatchesAny(q, s.SearchFields()) {
				matched = append(matched, s)
			}
		}
		list = matched
	}

	page, pages := paginate(len(list), flagPage, adminPageSize)
	start := (page - 1) * adminPageSize
	end := min(start+adminPageSize, len(list))
	shown := list[start:end]

	if flagJSON {
		return printJSON(shown)
	}

	colors := getColors()
	output.RenderStations(os.Stdout, shown, output.TableOptions{Colors: colors, ShowID: true})
	if pages > 1 {
		_, _ = fmt.Fprintln(os.Stdout, colors.Muted("\nPage %d of %d (%d stations)", page, pages, len(list)))
	}
	return nil
}

// paginate clamps page to the available pages. There is always at least one.
func paginate(total, page, size int) (int, int) {
	pages := max((total+size-1)/size, 1)
	return min(max(page, 1), pages), pages
}

func runAdminShow(cmd *cobra.Command, args []string) error {
	client, err := createClient()
	if err != nil {
		return err
	}
	s, err := findStation(cmd.Context(), client, args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(s)
	}

	c := getColors()
	row := func(label, value string) {
		_, _ = fmt.Fprintf(os.Stdout, "%s %s\n", c.Muted("%-10s", label), value)
	}
	row("ID:", strconv.FormatInt(s.ID, 10))
	row("Code:", s.Code)
	row("Name:", s.Name)
	row("City:", s.City)
	row("State:", s.State)
	row("Zone:", s.Zone)
	row("Platforms:", strconv.Itoa(s.Platforms))

	status, isActive, active := s.ActiveFlags()
	row("Status:", c.FormatStatus(s))
	row("isActive:", flagText(isActive))
	row("active:", flagText(active))
	if s.Inconsistent() {
		_, _ = fmt.Fprintln(os.Stdout, c.Error("Activity flags disagree with status %s", status))
	}
	return nil
}

func flagText(b *bool) string {
	if b == nil {
		return "-"
	}
	return strconv.FormatBool(*b)
}

func runAdminAdd(cmd *cobra.Command, _ []string) error {
	in := models.StationInput{}
	applyStationFlags(cmd, &in)
	if err := checkStation(in); err != nil {
		return err
	}

	client, err := createClient()
	if err != nil {
		return err
	}
	return report(client.AddStation(cmd.Context(), in))
}

func runAdminUpdate(cmd *cobra.Command, args []string) error {
	client, err := createClient()
	if err != nil {
		return err
	}
	s, err := findStation(cmd.Context(), client, args[0])
	if err != nil {
		return err
	}

	in := models.StationInput{
		StationCode: s.Code,
		StationName: s.Name,
		City:        s.City,
		State:       s.State,
		Zone:        s.Zone,
		Platforms:   s.Platforms,
	}
	applyStationFlags(cmd, &in)
	if err := checkStation(in); err != nil {
		return err
	}
	return report(client.UpdateStation(cmd.Context(), s.ID, in))
}

func runAdminStatus(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	status := strings.ToUpper(strings.TrimSpace(args[1]))
	if status != models.StatusActive && status != models.StatusInactive {
		return fmt.Errorf("status must be %s or %s, got %q", models.StatusActive, models.StatusInactive, args[1])
	}

	client, err := createClient()
	if err != nil {
		return err
	}
	return report(client.UpdateStationStatus(cmd.Context(), id, status))
}

func runAdminDelete(cmd *cobra.Command, args []string) error {
	client, err := createClient()
	if err != nil {
		return err
	}
	s, err := findStation(cmd.Context(), client, args[0])
	if err != nil {
		return err
	}

	if !flagYes {
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete station %s?", s.Label()))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			return nil
		}
	}
	return report(client.DeleteStation(cmd.Context(), s.ID))
}

// applyStationFlags copies the station flags the user set into in.
func applyStationFlags(cmd *cobra.Command, in *models.StationInput) {
	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if set("code") {
		in.StationCode = strings.ToUpper(strings.TrimSpace(flagCode))
	}
	if set("name") {
		in.StationName = strings.TrimSpace(flagName)
	}
	if set("city") {
		in.City = strings.TrimSpace(flagCity)
	}
	if set("state") {
		in.State = strings.TrimSpace(flagState)
	}
	if set("zone") {
		in.Zone = strings.TrimSpace(flagZone)
	}
	if set("platforms") {
		in.Platforms = flagPlatforms
	}
}

// checkStation prints the form errors of in, if any.
func checkStation(in models.StationInput) error {
	err := validate.New(nil).Station(in)
	if err == nil {
		return nil
	}
	var fe validate.FieldErrors
	if errors.As(err, &fe) {
		output.RenderFieldErrors(os.Stderr, fe, output.TableOptions{Colors: getColors()})
		return errReported
	}
	return err
}

// findStation looks up a station by ID in the admin list.
func findStation(ctx context.Context, client *api.Client, arg string) (models.Station, error) {
	id, err := parseID(arg)
	if err != nil {
		return models.Station{}, err
	}
	list, err := client.ListAdminStations(ctx)
	if err != nil {
		return models.Station{}, err
	}
	s, ok := stations.NewIndex(list).ByKey(strconv.FormatInt(id, 10))
	if !ok {
		return models.Station{}, fmt.Errorf("station %d not found", id)
	}
	return s, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid station ID %q", s)
	}
	return id, nil
}

// report prints the outcome of a mutating call.
func report(res api.Result) error {
	if flagJSON {
		out := map[string]any{"ok": res.OK(), "message": res.Text()}
		if err := printJSON(out); err != nil {
			return err
		}
	} else {
		output.RenderMessage(os.Stdout, res.OK(), res.Text(), output.TableOptions{Colors: getColors()})
	}
	if !res.OK() {
		logging.Debug("admin call failed", zap.Error(res.Err))
		return errReported
	}
	return nil
}

// confirm asks a yes/no question; anything but y or yes means no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	_, _ = fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
