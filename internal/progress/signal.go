package progress

import "math"

const (
	// CompleteFraction is the scroll fraction at which linear content counts
	// as fully read regardless of the step formula.
	CompleteFraction = 0.95
	// BottomThreshold is how close to the end, in layout units, counts as
	// having reached the bottom.
	BottomThreshold = 50
)

// ScrollStep maps a scroll fraction in [0,1] to a step in [1,total]: the
// largest i with fraction >= (i-1)/total, or total once fraction reaches
// CompleteFraction.
func ScrollStep(fraction float64, total int) int {
	if total < 1 {
		return 0
	}
	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}
	if fraction >= CompleteFraction {
		return total
	}
	for i := total; i > 1; i-- {
		if fraction*float64(total) >= float64(i-1) {
			return i
		}
	}
	return 1
}

// ScrollProgress tracks a linear-content screen. The terminal step is
// sticky: scrolling back up after reaching it keeps reporting total.
type ScrollProgress struct {
	total   int
	reached bool
}

func NewScrollProgress(total int) *ScrollProgress {
	return &ScrollProgress{total: total}
}

// Update returns the step for fraction.
func (p *ScrollProgress) Update(fraction float64) int {
	if p.reached {
		return p.total
	}
	step := ScrollStep(fraction, p.total)
	if step == p.total {
		p.reached = true
	}
	return step
}

func (p *ScrollProgress) Total() int { return p.total }

// EngagementProgress tracks screens made of discrete sections (accordions,
// tabs). Each distinct section viewed advances one step, but the final step
// also needs the bottom of the screen to have been reached.
type EngagementProgress struct {
	total  int
	viewed map[int]struct{}
	bottom bool
}

// NewEngagementProgress creates a tracker seeded with the sections that are
// expanded by default.
func NewEngagementProgress(total int, preExpanded ...int) *EngagementProgress {
	p := &EngagementProgress{total: total, viewed: make(map[int]struct{})}
	for _, idx := range preExpanded {
		p.mark(idx)
	}
	return p
}

func (p *EngagementProgress) mark(idx int) {
	if idx >= 0 && idx < p.total {
		p.viewed[idx] = struct{}{}
	}
}

// View records that section idx was expanded and returns the new step.
// Indices outside [0,total) are ignored.
func (p *EngagementProgress) View(idx int) int {
	p.mark(idx)
	return p.Step()
}

// ReachBottom records that the screen was scrolled to the bottom. It stays
// recorded for the rest of the session.
func (p *EngagementProgress) ReachBottom() int {
	p.bottom = true
	return p.Step()
}

func (p *EngagementProgress) Viewed(idx int) bool {
	_, ok := p.viewed[idx]
	return ok
}

func (p *EngagementProgress) AtBottom() bool { return p.bottom }

func (p *EngagementProgress) Total() int { return p.total }

// Step returns the current step in [1,total].
func (p *EngagementProgress) Step() int {
	if p.total < 1 {
		return 0
	}
	n := len(p.viewed)
	if n >= p.total {
		if p.bottom {
			return p.total
		}
		return max(p.total-1, 1)
	}
	return max(n, 1)
}

// NearBottom reports whether a viewport showing [offset, offset+visible) of
// content is within BottomThreshold of the end.
func NearBottom(offset, visible, content float64) bool {
	return content-(offset+visible) <= BottomThreshold
}
