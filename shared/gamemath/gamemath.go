// Package gamemath provides small pure math helpers shared between the
// simulation packages. It has no dependencies beyond the standard library.
package gamemath

import "math"

// Clamp limits v to [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Approach moves current toward target by at most step, without overshooting.
func Approach(current, target, step float64) float64 {
	if current < target {
		current += step
		if current > target {
			return target
		}
		return current
	}
	if current > target {
		current -= step
		if current < target {
			return target
		}
	}
	return current
}

// YawDirection converts a yaw angle into a unit direction on the ground plane.
// Yaw 0 faces -Z (into the screen); positive yaw turns clockwise when viewed
// from above.
func YawDirection(yaw float64) (dirX, dirZ float64) {
	return math.Sin(yaw), -math.Cos(yaw)
}

// WrapAngle normalizes an angle to (-π, π].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
