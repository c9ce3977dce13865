package visualization

import "math"

// Bounds returns the extents of the node positions in l. The zero Extents
// is returned for an empty layout.
func (l *Layout) Bounds() Extents {
	if len(l.Nodes) == 0 {
		return Extents{}
	}

	e := Extents{
		MinX: math.MaxFloat64, MaxX: -math.MaxFloat64,
		MinY: math.MaxFloat64, MaxY: -math.MaxFloat64,
	}
	for _, n := range l.Nodes {
		e.MinX = math.Min(e.MinX, n.Position.X)
		e.MaxX = math.Max(e.MaxX, n.Position.X)
		e.MinY = math.Min(e.MinY, n.Position.Y)
		e.MaxY = math.Max(e.MaxY, n.Position.Y)
	}
	return e
}

// Normalize scales positions to fit within bounds
func Normalize(positions map[string]Position, config LayoutConfig) map[string]Position {
	if len(positions) == 0 {
		return positions
	}

	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	for _, pos := range positions {
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX < 0.01 {
		rangeX = 1
	}
	if rangeY < 0.01 {
		rangeY = 1
	}

	targetWidth := config.Width - 2*config.Padding
	targetHeight := config.Height - 2*config.Padding

	normalized := make(map[string]Position, len(positions))
	for id, pos := range positions {
		normalized[id] = Position{
			X: config.Padding + ((pos.X-minX)/rangeX)*targetWidth,
			Y: config.Padding + ((pos.Y-minY)/rangeY)*targetHeight,
		}
	}
	return normalized
}
