package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/intakeflow/internal/dashboard"
	"github.com/celestiaorg/intakeflow/internal/db/models"
	"github.com/celestiaorg/intakeflow/internal/types"
	"github.com/celestiaorg/intakeflow/internal/validation"
)

// Flag names
const (
	flagName          = "name"
	flagPlannerTaskID = "planner-task-id"
	flagPortfolio     = "portfolio"
	flagStatus        = "status"
	flagStartDate     = "start"
	flagEndDate       = "end"
	flagQuery         = "query"
	flagReset         = "reset"
	flagJSON          = "json"
	flagFile          = "file"
	flagWidth         = "width"
)

const (
	defaultTimelineWidth = 60
	timelineNameWidth    = 28
	dateLayout           = "2006-01-02"
)

// now is replaced in tests
var now = time.Now

// GetProjectsCmd returns the projects command tree
func GetProjectsCmd() *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage intake projects",
	}

	projectsCmd.AddCommand(
		newListProjectsCmd(),
		newGetProjectCmd(),
		newCreateProjectCmd(),
		newUpdateProjectCmd(),
		newSetStatusCmd(),
		newDeleteProjectCmd(),
		newExportProjectsCmd(),
		newTimelineCmd(),
	)
	return projectsCmd
}

// addFilterFlags registers the dashboard filter flags on cmd
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagQuery, "q", "", "Match name, portfolio, planner task ID or status, case-insensitively")
	cmd.Flags().String(flagPortfolio, "", "Portfolio to show, or All")
	cmd.Flags().String(flagStatus, "", "Status to show, or All")
	cmd.Flags().Bool(flagReset, false, "Forget the saved filters before applying flags")
}

// resolveFilters merges the saved filters with the flags the user set and
// saves the result for the next invocation.
func resolveFilters(cmd *cobra.Command) (dashboard.Filters, error) {
	reset, err := cmd.Flags().GetBool(flagReset)
	if err != nil {
		return dashboard.Filters{}, fmt.Errorf("error getting reset flag: %w", err)
	}

	filters := dashboard.DefaultFilters()
	if !reset {
		if filters, err = prefs.Load(); err != nil {
			return dashboard.Filters{}, err
		}
	}

	if cmd.Flags().Changed(flagQuery) {
		filters.Query, _ = cmd.Flags().GetString(flagQuery)
	}
	if cmd.Flags().Changed(flagPortfolio) {
		filters.Portfolio, _ = cmd.Flags().GetString(flagPortfolio)
	}
	if cmd.Flags().Changed(flagStatus) {
		status, _ := cmd.Flags().GetString(flagStatus)
		if status != "" && !strings.EqualFold(status, dashboard.All) {
			parsed, ok := validation.ParseStatus(status)
			if !ok {
				return dashboard.Filters{}, fmt.Errorf("invalid status %q (allowed: %s)", status, validation.AllowedStatuses())
			}
			status = parsed.String()
		} else {
			status = dashboard.All
		}
		filters.Status = status
	}

	if err := prefs.Save(filters); err != nil {
		return dashboard.Filters{}, fmt.Errorf("error saving filters: %w", err)
	}
	return filters, nil
}

// loadView fetches every project and derives the dashboard view for the filters
func loadView(cmd *cobra.Command) (dashboard.View, error) {
	filters, err := resolveFilters(cmd)
	if err != nil {
		return dashboard.View{}, err
	}

	projects, err := apiClient.ListProjects(cmd.Context())
	if err != nil {
		return dashboard.View{}, fmt.Errorf("error listing projects: %w", err)
	}
	return dashboard.Derive(projects, filters, now()), nil
}

func newListProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects matching the current filters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := loadView(cmd)
			if err != nil {
				return err
			}

			asJSON, err := cmd.Flags().GetBool(flagJSON)
			if err != nil {
				return fmt.Errorf("error getting json flag: %w", err)
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), view.Projects)
			}
			return printProjectTable(cmd.OutOrStdout(), view)
		},
	}
	addFilterFlags(cmd)
	cmd.Flags().Bool(flagJSON, false, "Print the filtered projects as JSON")
	return cmd
}

func newGetProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a specific project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			project, err := apiClient.GetProject(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("error getting project: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), project)
		},
	}
}

func newCreateProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := types.ProjectRequest{}
			req.Name, _ = cmd.Flags().GetString(flagName)
			req.PlannerTaskID, _ = cmd.Flags().GetString(flagPlannerTaskID)
			req.Portfolio, _ = cmd.Flags().GetString(flagPortfolio)
			req.StartDate, _ = cmd.Flags().GetString(flagStartDate)
			req.EndDate, _ = cmd.Flags().GetString(flagEndDate)

			project, err := apiClient.CreateProject(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("error creating project: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), project)
		},
	}

	cmd.Flags().StringP(flagName, "n", "", "Project name")
	cmd.Flags().StringP(flagPlannerTaskID, "p", "", "Planner task ID")
	cmd.Flags().String(flagPortfolio, "", "Portfolio (default General)")
	cmd.Flags().String(flagStartDate, "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String(flagEndDate, "", "End date (YYYY-MM-DD)")
	for _, name := range []string{flagName, flagPlannerTaskID} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Errorf("failed to mark %s flag as required for create project command: %w", name, err))
		}
	}
	return cmd
}

func newUpdateProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a project; fields without a flag keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			current, err := apiClient.GetProject(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("error getting project: %w", err)
			}

			req := types.ProjectRequest{
				Name:          current.Name,
				PlannerTaskID: current.PlannerTaskID,
				Portfolio:     current.Portfolio,
				Status:        current.Status.String(),
				StartDate:     formatDate(current.StartDate),
				EndDate:       formatDate(current.EndDate),
			}
			overrideString(cmd, flagName, &req.Name)
			overrideString(cmd, flagPlannerTaskID, &req.PlannerTaskID)
			overrideString(cmd, flagPortfolio, &req.Portfolio)
			overrideString(cmd, flagStatus, &req.Status)
			overrideString(cmd, flagStartDate, &req.StartDate)
			overrideString(cmd, flagEndDate, &req.EndDate)

			project, err := apiClient.UpdateProject(cmd.Context(), id, req)
			if err != nil {
				return fmt.Errorf("error updating project: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), project)
		},
	}

	cmd.Flags().StringP(flagName, "n", "", "Project name")
	cmd.Flags().StringP(flagPlannerTaskID, "p", "", "Planner task ID")
	cmd.Flags().String(flagPortfolio, "", "Portfolio")
	cmd.Flags().String(flagStatus, "", "Status")
	cmd.Flags().String(flagStartDate, "", "Start date (YYYY-MM-DD, empty clears)")
	cmd.Flags().String(flagEndDate, "", "End date (YYYY-MM-DD, empty clears)")
	return cmd
}

func newSetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Change only the status of a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			project, err := apiClient.UpdateProjectStatus(cmd.Context(), id, args[1])
			if err != nil {
				return fmt.Errorf("error updating status: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), project)
		},
	}
}

func newDeleteProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := apiClient.DeleteProject(cmd.Context(), id); err != nil {
				return fmt.Errorf("error deleting project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %d deleted\n", id)
			return nil
		},
	}
}

func newExportProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered projects as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := loadView(cmd)
			if err != nil {
				return err
			}

			file, err := cmd.Flags().GetString(flagFile)
			if err != nil {
				return fmt.Errorf("error getting file flag: %w", err)
			}
			if file == "" {
				return dashboard.WriteCSV(cmd.OutOrStdout(), view.Projects)
			}

			f, err := os.Create(file)
			if err != nil {
				return fmt.Errorf("error creating %s: %w", file, err)
			}
			if err := dashboard.WriteCSV(f, view.Projects); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("error writing %s: %w", file, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d projects to %s\n", len(view.Projects), file)
			return nil
		},
	}
	addFilterFlags(cmd)
	cmd.Flags().StringP(flagFile, "f", "", "Write to this file instead of stdout")
	return cmd
}

func newTimelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Render the filtered projects on a quarterly timeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := loadView(cmd)
			if err != nil {
				return err
			}

			width, err := cmd.Flags().GetInt(flagWidth)
			if err != nil {
				return fmt.Errorf("error getting width flag: %w", err)
			}
			if width < 10 {
				return fmt.Errorf("width must be at least 10")
			}

			asJSON, err := cmd.Flags().GetBool(flagJSON)
			if err != nil {
				return fmt.Errorf("error getting json flag: %w", err)
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), view)
			}
			renderTimeline(cmd.OutOrStdout(), view, width)
			return nil
		},
	}
	addFilterFlags(cmd)
	cmd.Flags().IntP(flagWidth, "w", defaultTimelineWidth, "Width of the timeline in columns")
	cmd.Flags().Bool(flagJSON, false, "Print the derived view as JSON")
	return cmd
}

// printProjectTable prints the counters line followed by one row per project
func printProjectTable(out io.Writer, view dashboard.View) error {
	fmt.Fprintf(out, "Showing %d of %d", len(view.Projects), view.Total)
	for _, status := range models.ProjectStatuses {
		fmt.Fprintf(out, " | %s: %d", status, view.Counts.ByStatus[status])
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPLANNER TASK\tPORTFOLIO\tSTATUS\tSTART\tEND")
	for _, p := range view.Projects {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.PlannerTaskID, p.PortfolioOrDefault(), p.Status,
			displayDate(p.StartDate), displayDate(p.EndDate))
	}
	return w.Flush()
}

// renderTimeline draws tick labels, then each portfolio with one bar per project
func renderTimeline(out io.Writer, view dashboard.View, width int) {
	pad := strings.Repeat(" ", timelineNameWidth+1)

	axis := []rune(strings.Repeat(" ", width))
	for _, tick := range view.Ticks {
		col := column(tick.Offset, width)
		if col < 0 {
			continue
		}
		for i, r := range tick.Label {
			if col+i < width {
				axis[col+i] = r
			}
		}
	}
	fmt.Fprintf(out, "%s%s\n", pad, strings.TrimRight(string(axis), " "))

	for _, group := range view.Groups {
		fmt.Fprintf(out, "%s (%d)\n", group.Portfolio, len(group.Rows))
		for _, row := range group.Rows {
			fmt.Fprintf(out, "  %-*s|%s| %s\n", timelineNameWidth-2, truncate(row.Project.Name, timelineNameWidth-2),
				bar(row.Bar, width), row.Project.Status)
		}
	}
}

// bar draws geometry as a run of '#' inside a width-column track
func bar(g dashboard.BarGeometry, width int) string {
	track := []byte(strings.Repeat(".", width))
	if g.Width <= 0 && g.Offset <= 0 {
		return string(track)
	}

	start := column(g.Offset, width)
	length := int(math.Round(g.Width * float64(width)))
	if length < 1 {
		length = 1
	}
	for i := start; i < start+length && i < width; i++ {
		if i >= 0 {
			track[i] = '#'
		}
	}
	return string(track)
}

func column(offset float64, width int) int {
	return int(math.Floor(offset * float64(width)))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}

// overrideString copies the flag value into target when the flag was set
func overrideString(cmd *cobra.Command, flag string, target *string) {
	if cmd.Flags().Changed(flag) {
		*target, _ = cmd.Flags().GetString(flag)
	}
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid project id %q", arg)
	}
	return uint(id), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func displayDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(dateLayout)
}

// printJSON pretty prints v
func printJSON(out io.Writer, v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Fprintln(out, string(prettyJSON))
	return nil
}
