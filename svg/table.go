package svg

// IsNumerical returns true if the attribute wire name holds a numeric value.
// Names are case sensitive, anything unknown is not numerical.
func IsNumerical(name string) bool {
	switch name {
	case "x", "x1", "x2", "y", "y1", "y2", "rx", "ry", "cx", "cy", "r", "width", "height", "fontSize":
		return true
	}
	return false
}

// IsColor returns true if the attribute wire name holds a color value.
func IsColor(name string) bool {
	switch name {
	case "color", "fill":
		return true
	}
	return false
}
