package report

import (
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// NoSourcesText is shown wherever a record carries no grounding sources.
const NoSourcesText = "No direct sources linked for this segment."

// WriteMarkdown writes record as a standalone Markdown report.
func WriteMarkdown(w io.Writer, record Record, generatedAt time.Time) error {
	md := markdown.NewMarkdown(w)

	md.H1("Cosmetic Market Intelligence")
	md.PlainText("")
	md.PlainText("Real-time analysis based on data as of " + generatedAt.Format("2006-01-02"))
	md.PlainText("")

	md.H2("Market Executive Summary")
	md.PlainText("")
	md.PlainText(strings.TrimSpace(record.Summary))
	md.PlainText("")

	writeSegments(md, record.Segments)

	md.H2("Top Strategic Insights")
	md.PlainText("")
	if len(record.KeyInsights) > 0 {
		md.OrderedList(record.KeyInsights...)
		md.PlainText("")
	}

	writeIngredients(md, record.IngredientTrends)
	writeRegions(md, record.RegionalTrends)

	md.H2("Consumer Behavior Shifts")
	md.PlainText("")
	if len(record.ConsumerBehavior) > 0 {
		md.BulletList(record.ConsumerBehavior...)
		md.PlainText("")
	}

	writeSources(md, record.Sources)

	return md.Build()
}

func writeSegments(md *markdown.Markdown, segments []Segment) {
	md.H2("Global Market Segmentation (%)")
	md.PlainText("")
	if len(segments) == 0 {
		return
	}

	rows := make([][]string, 0, len(segments))
	chart := piechart.NewPieChart(io.Discard, piechart.WithTitle("Market Share"), piechart.WithShowData(true))
	for _, segment := range segments {
		rows = append(rows, []string{segment.Name, formatShare(segment.Value), segment.Growth + " YoY"})
		chart.LabelAndIntValue(segment.Name, uint64(math.Max(0, math.Round(segment.Value))))
	}
	md.Table(markdown.TableSet{
		Header: []string{"Segment", "Share", "Growth"},
		Rows:   rows,
	})
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func writeIngredients(md *markdown.Markdown, trends []IngredientTrend) {
	md.H2("Ingredient Momentum Matrix")
	md.PlainText("")
	if len(trends) == 0 {
		return
	}
	rows := make([][]string, 0, len(trends))
	for _, trend := range trends {
		rows = append(rows, []string{trend.Name, strings.ToUpper(string(trend.Momentum)), trend.Reason})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Ingredient", "Trend Status", "Market Rationale"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeRegions(md *markdown.Markdown, regions []RegionalTrend) {
	md.H2("Regional Market Dynamics")
	md.PlainText("")
	for _, region := range regions {
		md.H3(region.Region)
		md.PlainText("")
		md.PlainText(region.Description)
		md.PlainText("")
		if len(region.KeyBrands) > 0 {
			md.PlainText(markdown.Bold("Key brands:") + " " + strings.Join(region.KeyBrands, ", "))
			md.PlainText("")
		}
	}
}

func writeSources(md *markdown.Markdown, sources []Source) {
	md.H2("Sources & Data Grounding")
	md.PlainText("")
	if len(sources) == 0 {
		md.PlainText(markdown.Italic(NoSourcesText))
		md.PlainText("")
		return
	}
	links := make([]string, 0, len(sources))
	for _, source := range sources {
		links = append(links, markdown.Link(source.Title, source.URI))
	}
	md.BulletList(links...)
	md.PlainText("")
}

func formatShare(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "%"
}
