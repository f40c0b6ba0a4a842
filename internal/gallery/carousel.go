package gallery

import "math"

// SwipeThreshold is the horizontal travel, in pixels, that counts as a swipe.
const SwipeThreshold = 40

// Carousel is a slide position over Len slides. Buttons wrap around, swipes
// stop at the ends.
type Carousel struct {
	Len   int
	Index int
}

func (c Carousel) Next() Carousel {
	if c.Len == 0 {
		return c
	}
	c.Index = (c.Index + 1) % c.Len
	return c
}

func (c Carousel) Prev() Carousel {
	if c.Len == 0 {
		return c
	}
	c.Index = (c.Index - 1 + c.Len) % c.Len
	return c
}

// Go jumps to slide i, clamped to the valid range.
func (c Carousel) Go(i int) Carousel {
	if c.Len == 0 {
		c.Index = 0
		return c
	}
	c.Index = max(0, min(i, c.Len-1))
	return c
}

// Swipe moves one slide against the finger direction when the travel dx
// exceeds the threshold.
func (c Carousel) Swipe(dx float64) Carousel {
	if c.Len == 0 || math.Abs(dx) <= SwipeThreshold {
		return c
	}
	if dx < 0 {
		c.Index = min(c.Index+1, c.Len-1)
	} else {
		c.Index = max(c.Index-1, 0)
	}
	return c
}

// Apply runs a named move: next, prev, go or swipe.
func (c Carousel) Apply(action string, index int, dx float64) (Carousel, bool) {
	switch action {
	case "next":
		return c.Next(), true
	case "prev":
		return c.Prev(), true
	case "go":
		return c.Go(index), true
	case "swipe":
		return c.Swipe(dx), true
	default:
		return c, false
	}
}
