package visualization

import "math"

// CircularLayout arranges nodes in a circle
type CircularLayout struct {
	config LayoutConfig
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config LayoutConfig) *CircularLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &CircularLayout{config: config}
}

// ComputeLayout places ids on a circle in the order given, starting at
// angle zero. The result depends only on the order of ids.
func (cl *CircularLayout) ComputeLayout(ids []string) map[string]Position {
	positions := make(map[string]Position, len(ids))
	if len(ids) == 0 {
		return positions
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Max(math.Min(centerX, centerY)-cl.config.Padding, 0)

	angleStep := 2 * math.Pi / float64(len(ids))
	for i, id := range ids {
		angle := float64(i) * angleStep
		positions[id] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}
	return positions
}

// SeedPositions lays ids out on a circle and stretches the result to fill
// the canvas of config, padding included.
func SeedPositions(ids []string, config LayoutConfig) map[string]Position {
	return Normalize(NewCircularLayout(config).ComputeLayout(ids), config)
}
