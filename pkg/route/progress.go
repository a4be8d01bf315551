package route

import "math"

// Progress returns how far, in percent, the viewport has travelled through the
// route track. It starts when the track's top enters the bottom of the viewport
// and reaches 100 when the track's bottom leaves the top.
func Progress(viewportHeight, trackTop, trackHeight float64) float64 {
	total := viewportHeight + trackHeight
	if total <= 0 {
		return 0
	}
	scrolled := viewportHeight - trackTop
	return math.Max(0, math.Min(100, scrolled/total*100))
}

// StopNumber maps a progress percentage to the 1-indexed stop it falls on
func StopNumber(progress float64, total int) int {
	if total <= 0 {
		return 0
	}
	n := int(math.Floor(progress/100*float64(total))) + 1
	return max(1, min(total, n))
}
