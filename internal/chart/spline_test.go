package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoothPath_Degenerate(t *testing.T) {
	assert.Equal(t, "", SmoothPath(nil))
	assert.Equal(t, "", SmoothPath([]Point{}))
	assert.Equal(t, "", SmoothPath([]Point{{1, 2}}))

	line := SmoothPath([]Point{{0, 10}, {50, 20.5}})
	assert.Equal(t, "M 0 10 L 50 20.5", line)
	assert.Equal(t, 1, strings.Count(line, "L"))
	assert.NotContains(t, line, "C")
}

func TestSmoothPath_OneCurvePerSegment(t *testing.T) {
	path := SmoothPath([]Point{{0, 0}, {10, 10}, {20, 5}, {30, 30}})

	assert.True(t, strings.HasPrefix(path, "M 0 0 C "))
	assert.Equal(t, 3, strings.Count(path, "C"))
	assert.True(t, strings.HasSuffix(path, ", 30 30"))
}

func TestTangents_LocalExtremumIsFlat(t *testing.T) {
	m := tangents([]Point{{0, 0}, {1, 5}, {2, 0}})

	assert.Equal(t, 5.0, m[0])
	assert.Equal(t, 0.0, m[1])
	assert.Equal(t, -5.0, m[2])
}

func TestTangents_FlatSegmentIsFlat(t *testing.T) {
	m := tangents([]Point{{0, 0}, {1, 3}, {2, 3}, {3, 6}})
	assert.Equal(t, 0.0, m[1])
	assert.Equal(t, 0.0, m[2])
}

func TestTangents_HarmonicMeanForUniformSpacing(t *testing.T) {
	// Uniform spacing reduces to 2/(1/d0 + 1/d1).
	m := tangents([]Point{{0, 0}, {1, 1}, {2, 4}})
	assert.InDelta(t, 2.0/(1.0+1.0/3.0), m[1], 1e-9)
}

func TestSmoothPath_NoOvershoot(t *testing.T) {
	pts := []Point{{0, 0}, {1, 0}, {2, 10}, {3, 10}, {4, 2}, {5, 2.5}}
	m := tangents(pts)

	for i := 0; i < len(pts)-1; i++ {
		p0, p1 := pts[i], pts[i+1]
		lo, hi := min(p0.Y, p1.Y), max(p0.Y, p1.Y)
		dx := p1.X - p0.X
		for k := 0; k <= 20; k++ {
			y := hermite(p0.Y, p1.Y, m[i]*dx, m[i+1]*dx, float64(k)/20)
			require.GreaterOrEqual(t, y, lo-1e-9, "segment %d undershoots", i)
			require.LessOrEqual(t, y, hi+1e-9, "segment %d overshoots", i)
		}
	}
}

func hermite(y0, y1, m0, m1, t float64) float64 {
	t2, t3 := t*t, t*t*t
	return (2*t3-3*t2+1)*y0 + (t3-2*t2+t)*m0 + (-2*t3+3*t2)*y1 + (t3-t2)*m1
}

func TestSmoothAreaPath(t *testing.T) {
	pts := []Point{{0, 50}, {10, 20}, {20, 40}}

	area := SmoothAreaPath(pts, nil)
	assert.True(t, strings.HasPrefix(area, SmoothPath(pts)))
	assert.True(t, strings.HasSuffix(area, " L 20 50 L 0 50 Z"))

	base := 100.0
	assert.True(t, strings.HasSuffix(SmoothAreaPath(pts, &base), " L 20 100 L 0 100 Z"))
	assert.Equal(t, "", SmoothAreaPath(pts[:1], nil))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "3", formatFloat(3))
	assert.Equal(t, "3.5", formatFloat(3.5))
	assert.Equal(t, "3.33", formatFloat(10.0/3))
	assert.Equal(t, "0", formatFloat(-0.001))
}
