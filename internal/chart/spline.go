// Package chart renders SUDS trend lines as SVG using a monotone cubic
// Hermite spline, so the curve never overshoots between samples.
package chart

import (
	"strconv"
	"strings"
)

// Point is one sample in SVG coordinates. X must be strictly increasing
// across a series.
type Point struct {
	X, Y float64
}

// SmoothPath returns an SVG path through points. Fewer than two points
// yield "", two points a single line, and more a chain of cubic Bézier
// segments with Fritsch–Carlson tangents.
func SmoothPath(points []Point) string {
	if len(points) < 2 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, points[0])
	if len(points) == 2 {
		b.WriteString(" L ")
		writePoint(&b, points[1])
		return b.String()
	}
	writeCurves(&b, points)
	return b.String()
}

// SmoothAreaPath closes SmoothPath down to baseline and back to the start,
// giving a fillable region. A nil baseline uses the first point's Y.
func SmoothAreaPath(points []Point, baseline *float64) string {
	line := SmoothPath(points)
	if line == "" {
		return ""
	}
	base := points[0].Y
	if baseline != nil {
		base = *baseline
	}
	last := points[len(points)-1]
	var b strings.Builder
	b.WriteString(line)
	b.WriteString(" L ")
	writePoint(&b, Point{X: last.X, Y: base})
	b.WriteString(" L ")
	writePoint(&b, Point{X: points[0].X, Y: base})
	b.WriteString(" Z")
	return b.String()
}

func writeCurves(b *strings.Builder, pts []Point) {
	m := tangents(pts)
	for i := 0; i < len(pts)-1; i++ {
		p0, p1 := pts[i], pts[i+1]
		dx := (p1.X - p0.X) / 3
		c1 := Point{X: p0.X + dx, Y: p0.Y + m[i]*dx}
		c2 := Point{X: p1.X - dx, Y: p1.Y - m[i+1]*dx}
		b.WriteString(" C ")
		writePoint(b, c1)
		b.WriteString(", ")
		writePoint(b, c2)
		b.WriteString(", ")
		writePoint(b, p1)
	}
}

// tangents computes per-point slopes. Endpoints take the adjacent secant;
// interior points take zero at a local extremum or flat segment, otherwise
// the weighted harmonic mean of the neighbouring secants.
func tangents(pts []Point) []float64 {
	n := len(pts)
	h := make([]float64, n-1)
	d := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = pts[i+1].X - pts[i].X
		if h[i] != 0 {
			d[i] = (pts[i+1].Y - pts[i].Y) / h[i]
		}
	}

	m := make([]float64, n)
	m[0] = d[0]
	m[n-1] = d[n-2]
	for i := 1; i < n-1; i++ {
		if d[i-1]*d[i] <= 0 {
			continue
		}
		w1 := 2*h[i] + h[i-1]
		w2 := h[i] + 2*h[i-1]
		m[i] = (w1 + w2) / (w1/d[i-1] + w2/d[i])
	}
	return m
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(formatFloat(p.X))
	b.WriteByte(' ')
	b.WriteString(formatFloat(p.Y))
}

// formatFloat prints at most two decimals without trailing zeros.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
