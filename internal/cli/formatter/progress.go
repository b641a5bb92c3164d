package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func bar(pct float64, width int) (string, float64) {
	pct = min(max(pct, 0), 1)
	width = max(width, 2)
	filled := min(int(pct*float64(width)), width)
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled), pct
}

// RenderProgress renders a bar like [████░░░░]  45%, green above 66%,
// yellow from 33% and red below.
func RenderProgress(pct float64, width int) string {
	blocks, pct := bar(pct, width)
	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(blocks), pct*100)
}

// RenderSteps renders a step counter as a bar followed by "value/max".
func RenderSteps(value, maxSteps, width int) string {
	if maxSteps <= 0 {
		return Dim("--")
	}
	blocks, pct := bar(float64(value)/float64(maxSteps), width)
	style := StyleBlue
	if pct >= 1 {
		style = StyleGreen
	}
	return fmt.Sprintf("%s %d/%d", style.Render(blocks), value, maxSteps)
}
