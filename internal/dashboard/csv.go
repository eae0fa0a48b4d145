package dashboard

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/celestiaorg/intakeflow/internal/db/models"
)

// CSVHeader is the first line of every export
var CSVHeader = []string{"Id", "Name", "Status", "PlannerTaskId", "Portfolio", "StartDate", "EndDate"}

const csvRowSeparator = "\r\n"

// WriteCSV writes projects as CSV. Rows are separated by CRLF with no
// trailing separator. A field is quoted only when it contains a comma, a
// quote or a newline.
func WriteCSV(w io.Writer, projects []models.Project) error {
	lines := make([]string, 0, len(projects)+1)
	lines = append(lines, joinCSV(CSVHeader))
	for _, p := range projects {
		lines = append(lines, joinCSV([]string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			string(p.Status),
			p.PlannerTaskID,
			p.PortfolioOrDefault(),
			formatDate(p.StartDate),
			formatDate(p.EndDate),
		}))
	}

	if _, err := io.WriteString(w, strings.Join(lines, csvRowSeparator)); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// EscapeCSV quotes a field if it contains a comma, quote or newline
func EscapeCSV(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func joinCSV(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeCSV(f)
	}
	return strings.Join(escaped, ",")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
