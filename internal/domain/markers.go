package domain

const markerKey = "meowcode"

// Marker lines frame every generated block. Files generated with other
// literals can no longer be stripped, so these must not change.
const (
	BeginMarker = "#region " + markerKey
	EndMarker   = "#endregion " + markerKey
)

// StripGenerated returns the lines that lie outside generated blocks, in
// order. A begin marker without an end marker hides everything after it.
func StripGenerated(lines []string) []string {
	original, _ := stripWithOrigins(lines)
	return original
}

// stripWithOrigins is StripGenerated that also returns, for every kept line,
// its index in the input.
func stripWithOrigins(lines []string) ([]string, []int) {
	original := make([]string, 0, len(lines))
	origins := make([]int, 0, len(lines))
	inBlock := false

	for i, line := range lines {
		switch {
		case line == BeginMarker:
			inBlock = true
		case line == EndMarker:
			inBlock = false
		case !inBlock:
			original = append(original, line)
			origins = append(origins, i)
		}
	}

	return original, origins
}

// frameBlock wraps body in the marker pair.
func frameBlock(body []string) []string {
	lines := make([]string, 0, len(body)+2)
	lines = append(lines, BeginMarker)
	lines = append(lines, body...)
	lines = append(lines, EndMarker)

	return lines
}
