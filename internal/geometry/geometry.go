// Package geometry holds the pure measurement math: vertical rectangles,
// overlap fractions, and threshold qualification. It is a leaf package with
// no internal imports.
package geometry

// Rect is an axis-aligned vertical span in the scrolling container's
// coordinate space. Only the vertical axis matters for tracking.
type Rect struct {
	Top    float64
	Height float64
}

// Bottom returns the lower edge of the rect.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// OverlapFraction returns the fraction of the target's span covered by the
// zone's span, in [0, 1]. A zero-height target never overlaps.
func OverlapFraction(target, zone Rect) float64 {
	if target.Height <= 0 {
		return 0
	}

	top := target.Top
	if zone.Top > top {
		top = zone.Top
	}
	bottom := target.Bottom()
	if zone.Bottom() < bottom {
		bottom = zone.Bottom()
	}

	overlap := bottom - top
	if overlap <= 0 {
		return 0
	}

	frac := overlap / target.Height
	if frac > 1 {
		frac = 1
	}
	return frac
}

// Qualifies reports whether an overlap fraction meets the entry threshold.
// The boundary is inclusive: a fraction exactly at the threshold qualifies.
func Qualifies(fraction, threshold float64) bool {
	return fraction >= threshold
}
