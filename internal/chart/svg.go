package chart

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/wisemind/internal/domain"
)

// Scale maps data values into a viewport with padding on every side. SVG
// Y grows downward, so larger values map to smaller Y.
type Scale struct {
	Width, Height float64
	Padding       float64
	XMin, XMax    float64
	YMin, YMax    float64
}

func (s Scale) Point(x, y float64) Point {
	return Point{X: s.x(x), Y: s.y(y)}
}

func (s Scale) x(v float64) float64 {
	span := s.XMax - s.XMin
	inner := s.Width - 2*s.Padding
	if span == 0 {
		return s.Padding + inner/2
	}
	return s.Padding + (v-s.XMin)/span*inner
}

func (s Scale) y(v float64) float64 {
	span := s.YMax - s.YMin
	inner := s.Height - 2*s.Padding
	if span == 0 {
		return s.Padding + inner/2
	}
	return s.Height - s.Padding - (v-s.YMin)/span*inner
}

// Options controls RenderSVG.
type Options struct {
	Width, Height float64
	Padding       float64
	Stroke        string
	Fill          string
	Title         string
}

// DefaultOptions returns the layout used by the CLI.
func DefaultOptions() Options {
	return Options{
		Width:   640,
		Height:  240,
		Padding: 24,
		Stroke:  "#7C3AED",
		Fill:    "#7C3AED33",
		Title:   "SUDS trend",
	}
}

// SudsPoints projects check-ins onto a scale spanning their dates and the
// SUDS range, dropping entries with unparseable dates and keeping one
// point per day.
func SudsPoints(checkins []domain.SudsCheckin, opts Options) ([]Point, Scale) {
	type sample struct {
		day   float64
		score int
	}
	seen := make(map[float64]bool)
	var samples []sample
	for _, c := range checkins {
		t, err := domain.ParseDate(c.Date)
		if err != nil {
			continue
		}
		day := float64(t.Unix()) / (24 * time.Hour).Seconds()
		if seen[day] {
			continue
		}
		seen[day] = true
		samples = append(samples, sample{day: day, score: c.Score})
	}

	scale := Scale{
		Width: opts.Width, Height: opts.Height, Padding: opts.Padding,
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: domain.MinSuds, YMax: domain.MaxSuds,
	}
	for _, s := range samples {
		scale.XMin = math.Min(scale.XMin, s.day)
		scale.XMax = math.Max(scale.XMax, s.day)
	}
	if len(samples) == 0 {
		scale.XMin, scale.XMax = 0, 0
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i].day < samples[j].day })
	points := make([]Point, len(samples))
	for i, s := range samples {
		points[i] = scale.Point(s.day, float64(s.score))
	}
	return points, scale
}

// RenderSVG returns a standalone SVG document plotting the check-ins as a
// smoothed area chart.
func RenderSVG(checkins []domain.SudsCheckin, opts Options) string {
	points, scale := SudsPoints(checkins, opts)
	base := scale.Point(0, domain.MinSuds).Y

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(opts.Width), formatFloat(opts.Height), formatFloat(opts.Width), formatFloat(opts.Height))
	b.WriteByte('\n')
	if opts.Title != "" {
		fmt.Fprintf(&b, "  <title>%s</title>\n", escapeXML(opts.Title))
	}
	for _, level := range []float64{domain.MinSuds, 5, domain.MaxSuds} {
		y := scale.Point(0, level).Y
		fmt.Fprintf(&b, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#E5E7EB" stroke-width="1"/>`+"\n",
			formatFloat(opts.Padding), formatFloat(y), formatFloat(opts.Width-opts.Padding), formatFloat(y))
	}
	if area := SmoothAreaPath(points, &base); area != "" {
		fmt.Fprintf(&b, `  <path d="%s" fill="%s" stroke="none"/>`+"\n", area, opts.Fill)
		fmt.Fprintf(&b, `  <path d="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n", SmoothPath(points), opts.Stroke)
	}
	for _, p := range points {
		fmt.Fprintf(&b, `  <circle cx="%s" cy="%s" r="3" fill="%s"/>`+"\n", formatFloat(p.X), formatFloat(p.Y), opts.Stroke)
	}
	b.WriteString("</svg>\n")
	return b.String()
}

func escapeXML(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;").Replace(s)
}
