// Package dashboard renders the analysis state as an HTML page.
package dashboard

import (
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Keyring-Network/trendintel/internal/analysis"
	"github.com/Keyring-Network/trendintel/internal/report"
)

// SummaryLines is how many lines of the summary the page shows.
const SummaryLines = 5

// Palette cycles over chart segments.
var Palette = []string{"#8884d8", "#82ca9d", "#ffc658", "#ff8042", "#0088FE"}

type SegmentView struct {
	Name   string
	Growth string
	Color  string
	Share  string
}

type IngredientView struct {
	Name   string
	Label  string
	Class  string
	Reason string
}

type View struct {
	Status     analysis.Status
	Error      string
	ReportDate string
	HasReport  bool

	Summary          string
	Insights         []string
	Segments         []SegmentView
	Chart            template.CSS
	Ingredients      []IngredientView
	Regions          []report.RegionalTrend
	ConsumerBehavior []string
	Sources          []report.Source
	NoSourcesText    string
}

func (v View) Idle() bool    { return v.Status == analysis.StatusIdle }
func (v View) Loading() bool { return v.Status == analysis.StatusLoading }
func (v View) Failed() bool  { return v.Status == analysis.StatusError }

// Succeeded reports whether the report sections are shown.
func (v View) Succeeded() bool {
	return v.Status == analysis.StatusSuccess && v.HasReport
}

// TriggerLabel is the caption of the header trigger.
func (v View) TriggerLabel() string {
	if v.Idle() {
		return "Start Analysis"
	}
	return "Refresh Data"
}

func NewView(state analysis.State, now time.Time) View {
	view := View{
		Status:        state.Status,
		Error:         state.Error,
		ReportDate:    now.Format("January 2, 2006"),
		NoSourcesText: report.NoSourcesText,
	}
	if view.Status == "" {
		view.Status = analysis.StatusIdle
	}
	if state.Status != analysis.StatusSuccess || state.Record == nil {
		return view
	}

	rec := state.Record
	view.HasReport = true
	view.Summary = SummaryExcerpt(rec.Summary)
	view.Insights = rec.KeyInsights
	view.Segments = segmentViews(rec.Segments)
	view.Chart = chartGradient(rec.Segments)
	view.Regions = rec.RegionalTrends
	view.ConsumerBehavior = rec.ConsumerBehavior
	view.Sources = rec.Sources
	for _, trend := range rec.IngredientTrends {
		view.Ingredients = append(view.Ingredients, IngredientView{
			Name:   trend.Name,
			Label:  MomentumLabel(trend.Momentum),
			Class:  MomentumClass(trend.Momentum),
			Reason: trend.Reason,
		})
	}
	return view
}

// SummaryExcerpt keeps the first lines of the summary and marks the cut.
func SummaryExcerpt(summary string) string {
	lines := strings.Split(summary, "\n")
	if len(lines) > SummaryLines {
		lines = lines[:SummaryLines]
	}
	return strings.Join(lines, "\n") + "..."
}

// MomentumClass maps a momentum tag to its CSS treatment. Unknown tags get the
// stable treatment.
func MomentumClass(m report.Momentum) string {
	switch m {
	case report.MomentumUp:
		return "momentum-up"
	case report.MomentumDown:
		return "momentum-down"
	default:
		return "momentum-stable"
	}
}

var upper = cases.Upper(language.Und)

func MomentumLabel(m report.Momentum) string {
	return upper.String(string(m))
}

func segmentTotal(segments []report.Segment) float64 {
	var total float64
	for _, s := range segments {
		if s.Value > 0 {
			total += s.Value
		}
	}
	return total
}

func segmentViews(segments []report.Segment) []SegmentView {
	total := segmentTotal(segments)
	out := make([]SegmentView, 0, len(segments))
	for i, s := range segments {
		share := 0.0
		if total > 0 && s.Value > 0 {
			share = s.Value / total * 100
		}
		out = append(out, SegmentView{
			Name:   s.Name,
			Growth: s.Growth,
			Color:  Palette[i%len(Palette)],
			Share:  fmt.Sprintf("%.0f%%", math.Round(share)),
		})
	}
	return out
}

func chartGradient(segments []report.Segment) template.CSS {
	total := segmentTotal(segments)
	if total <= 0 {
		return template.CSS("conic-gradient(#e2e8f0 0% 100%)")
	}
	stops := make([]string, 0, len(segments))
	start := 0.0
	for i, s := range segments {
		if s.Value <= 0 {
			continue
		}
		end := start + s.Value/total*100
		stops = append(stops, fmt.Sprintf("%s %.2f%% %.2f%%", Palette[i%len(Palette)], start, end))
		start = end
	}
	return template.CSS("conic-gradient(" + strings.Join(stops, ", ") + ")")
}
