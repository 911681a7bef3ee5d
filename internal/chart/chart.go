// Package chart renders aggregate rows as bar charts with go-chart.
package chart

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"salary-dashboard/internal/analysis"
	"salary-dashboard/internal/domain"
)

type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case SVG, PNG:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown chart format %q", s)
}

func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() gochart.RendererProvider {
	if f == PNG {
		return gochart.PNG
	}
	return gochart.SVG
}

// Spec describes one chart. Zero sizes fall back to the package defaults.
type Spec struct {
	Title         string
	CategoryLabel string
	ValueLabel    string
	Measure       domain.Measure
	Format        Format
	Width         int
	Height        int
	BarWidth      int
}

const (
	defaultWidth    = 720
	defaultHeight   = 420
	defaultBarWidth = 48

	// NotAvailable labels a bar whose mean is undefined.
	NotAvailable = "n/a"
	// NoData labels the placeholder bar of an empty chart.
	NoData = "No data"

	// Longer categories are cut on the chart; the value table keeps them whole.
	maxCategoryRunes = 18

	// go-chart word-wraps a bar label that is wider than its slot, splitting
	// numbers mid-token, so slots are sized from the label instead.
	labelRuneWidth = 9 // upper bound for a 10pt axis glyph at 92 DPI
	labelPadding   = 12
	minBarSpacing  = 24
	chartChrome    = 180 // background padding plus the y axis gutter
)

// SpecFor returns the spec of the chart plotting m by f.
func SpecFor(f domain.CategoryField, m domain.Measure) Spec {
	return Spec{
		Title:         m.Title(f),
		CategoryLabel: f.Label(),
		ValueLabel:    m.Label(),
		Measure:       m,
		Format:        SVG,
	}
}

// WithSize returns a copy of s with the given dimensions.
func (s Spec) WithSize(width, height, barWidth int) Spec {
	s.Width, s.Height, s.BarWidth = width, height, barWidth
	return s
}

func (s Spec) normalized() Spec {
	if s.Width <= 0 {
		s.Width = defaultWidth
	}
	if s.Height <= 0 {
		s.Height = defaultHeight
	}
	if s.BarWidth <= 0 {
		s.BarWidth = defaultBarWidth
	}
	if s.Format == "" {
		s.Format = SVG
	}
	return s
}

// FormatValue renders v the way bar labels show it.
func FormatValue(m domain.Measure, v float64) string {
	if m == domain.DistinctEmployeeCount {
		return humanize.Comma(int64(math.Round(v)))
	}
	return humanize.CommafWithDigits(v, 2)
}

// Bars converts rows to one labelled bar each. The label carries the
// category and the value; an undefined value becomes a zero bar marked n/a.
func Bars(rows []analysis.AggregateRow, m domain.Measure) []gochart.Value {
	bars := make([]gochart.Value, 0, len(rows))
	for _, row := range rows {
		v, ok := row.Value(m)
		text := NotAvailable
		if ok {
			text = FormatValue(m, v)
		} else {
			v = 0
		}
		bars = append(bars, gochart.Value{
			Label: shorten(row.Category) + "\n" + text,
			Value: v,
			Style: barStyle,
		})
	}
	return bars
}

func shorten(s string) string {
	if utf8.RuneCountInString(s) <= maxCategoryRunes {
		return s
	}
	return string([]rune(s)[:maxCategoryRunes-1]) + "…"
}

var barStyle = gochart.Style{
	FillColor:   drawing.ColorFromHex("4F46E5"),
	StrokeColor: drawing.ColorFromHex("4338CA"),
	StrokeWidth: 1,
}

// RenderBarChart writes the chart for rows to w. It does not fail on empty
// or undefined data: an empty rows slice produces a placeholder chart. Only
// errors writing to w are returned.
func RenderBarChart(w io.Writer, rows []analysis.AggregateRow, spec Spec) error {
	spec = spec.normalized()

	var buf bytes.Buffer
	if err := build(spec, Bars(rows, spec.Measure)).Render(spec.Format.provider(), &buf); err != nil {
		buf.Reset()
		if err := placeholder(spec).Render(spec.Format.provider(), &buf); err != nil {
			return fmt.Errorf("render placeholder chart: %w", err)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func placeholder(spec Spec) gochart.BarChart {
	return build(spec, []gochart.Value{{Label: NoData, Value: 0, Style: barStyle}})
}

func build(spec Spec, bars []gochart.Value) gochart.BarChart {
	if len(bars) == 0 {
		bars = []gochart.Value{{Label: NoData, Value: 0, Style: barStyle}}
	}

	top := 0.0
	for _, b := range bars {
		top = math.Max(top, b.Value)
	}
	if top <= 0 {
		top = 1
	}

	spacing, width := layout(spec, bars)
	if spec.Format == SVG {
		// the SVG renderer writes text verbatim
		bars = escapeLabels(bars)
		spec.Title = html.EscapeString(spec.Title)
		spec.CategoryLabel = html.EscapeString(spec.CategoryLabel)
		spec.ValueLabel = html.EscapeString(spec.ValueLabel)
	}

	return gochart.BarChart{
		Title:      spec.Title,
		Width:      width,
		Height:     spec.Height,
		BarWidth:   spec.BarWidth,
		BarSpacing: spacing,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 48, Left: 36, Right: 16, Bottom: 36},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: top * 1.15},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return humanize.CommafWithDigits(f, 1)
				}
				return fmt.Sprint(v)
			},
		},
		Bars:     bars,
		Elements: []gochart.Renderable{axisLabels(spec)},
	}
}

// layout returns the bar spacing that fits the widest label line and the
// chart width that holds every slot. The width never drops below spec.Width.
func layout(spec Spec, bars []gochart.Value) (spacing, width int) {
	slot := 0
	for _, b := range bars {
		for _, line := range strings.Split(b.Label, "\n") {
			slot = max(slot, utf8.RuneCountInString(line)*labelRuneWidth+labelPadding)
		}
	}
	spacing = max(slot-spec.BarWidth, minBarSpacing)
	width = max(spec.Width, chartChrome+len(bars)*(spec.BarWidth+spacing))
	return spacing, width
}

func escapeLabels(bars []gochart.Value) []gochart.Value {
	out := make([]gochart.Value, len(bars))
	for i, b := range bars {
		b.Label = html.EscapeString(b.Label)
		out[i] = b
	}
	return out
}

// axisLabels draws the category label under the plot and the value label
// rotated along the left edge.
func axisLabels(spec Spec) gochart.Renderable {
	return func(r gochart.Renderer, canvasBox gochart.Box, defaults gochart.Style) {
		style := gochart.Style{
			FontSize:  10,
			FontColor: drawing.ColorFromHex("374151"),
		}.InheritFrom(defaults)

		style.WriteTextOptionsToRenderer(r)
		xb := r.MeasureText(spec.CategoryLabel)
		x := canvasBox.Left + (canvasBox.Width()-xb.Width())/2
		gochart.Draw.Text(r, spec.CategoryLabel, x, spec.Height-8, style)

		yStyle := style
		yStyle.TextRotationDegrees = 270
		yStyle.WriteTextOptionsToRenderer(r)
		yb := r.MeasureText(spec.ValueLabel)
		y := canvasBox.Top + (canvasBox.Height()+yb.Width())/2
		gochart.Draw.Text(r, spec.ValueLabel, 14, y, yStyle)
	}
}
