package dashboard

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/intakeflow/internal/db/models"
)

func TestEscapeCSV(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "", want: ""},
		{in: "a,b", want: `"a,b"`},
		{in: `say "hi"`, want: `"say ""hi"""`},
		{in: "two\nlines", want: "\"two\nlines\""},
		{in: " leading space", want: " leading space"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeCSV(tt.in), tt.in)
	}
}

func TestWriteCSV(t *testing.T) {
	projects := []models.Project{
		{
			ID: 7, Name: "Payroll, phase 2", Status: models.ProjectStatusApproved, PlannerTaskID: "PLN-7",
			Portfolio: "HR", StartDate: day(2024, 1, 1), EndDate: day(2024, 6, 30),
		},
		{ID: 8, Name: `The "big" one`, Status: models.ProjectStatusInitiated, PlannerTaskID: "PLN-8"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, projects))

	want := strings.Join([]string{
		"Id,Name,Status,PlannerTaskId,Portfolio,StartDate,EndDate",
		`7,"Payroll, phase 2",Approved,PLN-7,HR,2024-01-01T00:00:00Z,2024-06-30T00:00:00Z`,
		`8,"The ""big"" one",Initiated,PLN-8,General,,`,
	}, "\r\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Id,Name,Status,PlannerTaskId,Portfolio,StartDate,EndDate", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSVPropagatesErrors(t *testing.T) {
	err := WriteCSV(failingWriter{}, nil)
	assert.ErrorContains(t, err, "disk full")
}
