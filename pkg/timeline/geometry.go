package timeline

// Position converts a segment's start offset into a percentage of the
// parent lane's duration, for proportional horizontal placement.
//
// A zero parent duration marks a degenerate template; Position returns 0
// rather than dividing by zero. The result is not clamped to [0, 100]: a
// segment beginning after the parent's end yields a value above 100, which
// signals an authoring inconsistency the rendering layer is responsible
// for flagging visually.
func Position(offset, parentDuration int64) float64 {
	if parentDuration == 0 {
		return 0
	}
	return float64(offset) / float64(parentDuration) * 100
}

// Width converts a segment's duration into a percentage of the parent
// lane's duration, with the same zero-guard and no clamping as Position.
func Width(duration, parentDuration int64) float64 {
	if parentDuration == 0 {
		return 0
	}
	return float64(duration) / float64(parentDuration) * 100
}
