package gamemath

import "math"

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// StepFall integrates gravity over dt and caps the fall speed at terminal.
// Upward speeds are left alone.
func StepFall(speed, gravity, terminal, dt float64) float64 {
	return math.Min(speed+gravity*dt, terminal)
}

// Tilt maps vertical speed to a body angle in radians within [lo, hi].
func Tilt(speedY, perSpeed, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, speedY*perSpeed))
}

// HomingStep returns the displacement that moves (x, y) toward the target
// at speed for dt seconds without overshooting. Targets beyond maxRange,
// or closer than one pixel, give no movement.
func HomingStep(x, y, targetX, targetY, speed, maxRange, dt float64) (dx, dy float64) {
	dirX := targetX - x
	dirY := targetY - y
	dist := math.Hypot(dirX, dirY)
	if dist < 1 || dist > maxRange {
		return 0, 0
	}
	step := math.Min(speed*dt, dist)
	return dirX / dist * step, dirY / dist * step
}
