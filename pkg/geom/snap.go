package geom

import "math"

// SnapToGrid rounds each coordinate of p to the nearest multiple of
// size. A non-positive size returns p unchanged.
func SnapToGrid(p Vec2, size float64) Vec2 {
	if size <= 0 {
		return p
	}
	return Vec2{
		X: math.Round(p.X/size) * size,
		Y: math.Round(p.Y/size) * size,
	}
}

// SnapAngle rounds theta to the nearest multiple of increment radians.
// A non-positive increment returns theta unchanged.
func SnapAngle(theta, increment float64) float64 {
	if increment <= 0 {
		return theta
	}
	return math.Round(theta/increment) * increment
}
