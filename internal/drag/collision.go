package drag

import "math"

// Rect is an axis-aligned rectangle in board coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

type point struct{ x, y float64 }

func (r Rect) corners() [4]point {
	return [4]point{
		{r.Left, r.Top},
		{r.Left + r.Width, r.Top},
		{r.Left, r.Top + r.Height},
		{r.Left + r.Width, r.Top + r.Height},
	}
}

// Droppable is a candidate drop target: a card, a column container, or the trash.
type Droppable struct {
	ID   string
	Rect Rect
}

// ClosestCorners picks the droppable whose corners are nearest, on average, to
// the corresponding corners of the dragged rectangle. Ties go to the earliest
// candidate in list order. It reports false when there are no candidates.
func ClosestCorners(active Rect, candidates []Droppable) (string, bool) {
	best := -1
	bestDist := math.Inf(1)
	ac := active.corners()
	for i, c := range candidates {
		cc := c.Rect.corners()
		var sum float64
		for k := range ac {
			sum += math.Hypot(ac[k].x-cc[k].x, ac[k].y-cc[k].y)
		}
		if d := sum / 4; d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return "", false
	}
	return candidates[best].ID, true
}
