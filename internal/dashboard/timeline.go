package dashboard

import (
	"fmt"
	"time"

	"github.com/celestiaorg/intakeflow/internal/db/models"
)

// Padding applied around the dated projects, and the window used when none are dated
const (
	paddingMonths = 1
	defaultMonths = 6
)

// Range is the visible span of the timeline
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Span returns the length of the range
func (r Range) Span() time.Duration {
	return r.End.Sub(r.Start)
}

// fraction returns d as a share of the span, 0 when the span is empty
func (r Range) fraction(d time.Duration) float64 {
	span := r.Span()
	if span <= 0 {
		return 0
	}
	return float64(d) / float64(span)
}

// Bounds returns the timeline range for the projects. With no dated project
// the range is [now, now+6 months]; otherwise it spans every start and end
// date padded by one month on each side.
func Bounds(projects []models.Project, now time.Time) Range {
	var (
		minDate, maxDate time.Time
		found            bool
	)
	for _, p := range projects {
		for _, d := range []*time.Time{p.StartDate, p.EndDate} {
			if d == nil {
				continue
			}
			if !found || d.Before(minDate) {
				minDate = *d
			}
			if !found || d.After(maxDate) {
				maxDate = *d
			}
			found = true
		}
	}

	if !found {
		return Range{Start: now, End: now.AddDate(0, defaultMonths, 0)}
	}
	return Range{
		Start: minDate.AddDate(0, -paddingMonths, 0),
		End:   maxDate.AddDate(0, paddingMonths, 0),
	}
}

// Tick marks the start of a calendar quarter on the timeline
type Tick struct {
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
	Offset float64   `json:"offset"`
}

// Ticks returns one tick per quarter, starting at the first day of the quarter
// containing r.Start and continuing while the tick is not after r.End.
// The first tick may sit slightly before the range, giving a negative offset.
func Ticks(r Range) []Tick {
	start := r.Start
	d := time.Date(start.Year(), quarterStartMonth(start.Month()), 1, 0, 0, 0, 0, start.Location())

	var ticks []Tick
	for !d.After(r.End) {
		ticks = append(ticks, Tick{
			Date:   d,
			Label:  fmt.Sprintf("Q%d %d", quarterOf(d.Month()), d.Year()),
			Offset: r.fraction(d.Sub(r.Start)),
		})
		d = d.AddDate(0, 3, 0)
	}
	return ticks
}

func quarterOf(m time.Month) int {
	return (int(m)-1)/3 + 1
}

func quarterStartMonth(m time.Month) time.Month {
	return time.Month((quarterOf(m)-1)*3 + 1)
}

// BarGeometry places a project on the timeline as fractions of the range
type BarGeometry struct {
	Offset float64 `json:"offset"`
	Width  float64 `json:"width"`
}

// Bar returns the project's bar. Both values are zero unless the project has
// a start and an end date.
func Bar(p models.Project, r Range) BarGeometry {
	if p.StartDate == nil || p.EndDate == nil {
		return BarGeometry{}
	}
	return BarGeometry{
		Offset: r.fraction(maxDuration(0, p.StartDate.Sub(r.Start))),
		Width:  r.fraction(maxDuration(0, p.EndDate.Sub(*p.StartDate))),
	}
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
