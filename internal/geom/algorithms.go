package geom

import "math"

const epsilon = 4 * 2.220446049250313e-16

// DoubleNear compares two ordinates with a tolerance of a few ULPs around 1.
func DoubleNear(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= epsilon
}

func doubleNearEps(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// SqrDistToSegment returns the squared distance from (px, py) to the
// segment (x1, y1)-(x2, y2) and the closest point on it. Distances within
// eps of zero snap the closest point onto (px, py).
func SqrDistToSegment(px, py, x1, y1, x2, y2, eps float64) (dist, cx, cy float64) {
	cx, cy = x1, y1
	dx := x2 - x1
	dy := y2 - y1
	if !DoubleNear(dx, 0) || !DoubleNear(dy, 0) {
		t := ((px-x1)*dx + (py-y1)*dy) / (dx*dx + dy*dy)
		if t > 1 {
			cx, cy = x2, y2
		} else if t > 0 {
			cx += dx * t
			cy += dy * t
		}
	}
	dx = px - cx
	dy = py - cy
	dist = dx*dx + dy*dy
	if doubleNearEps(dist, 0, eps) {
		return 0, px, py
	}
	return dist, cx, cy
}

// leftOfLine is negative when (x, y) lies left of the directed line
// (x1, y1)->(x2, y2).
func leftOfLine(x, y, x1, y1, x2, y2 float64) float64 {
	return (x-x1)*(y2-y1) - (y-y1)*(x2-x1)
}

// NormalizedAngle maps a radian angle into [0, 2*pi).
func NormalizedAngle(a float64) float64 {
	if a >= 2*math.Pi || a <= -2*math.Pi {
		a = math.Mod(a, 2*math.Pi)
	}
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// LineAngle is the bearing of (x1, y1)->(x2, y2) in radians, clockwise
// from north.
func LineAngle(x1, y1, x2, y2 float64) float64 {
	at := math.Atan2(y2-y1, x2-x1)
	return NormalizedAngle(-at + math.Pi/2)
}

// AverageAngle bisects two bearings along the shorter way round.
func AverageAngle(a1, a2 float64) float64 {
	a1 = NormalizedAngle(a1)
	a2 = NormalizedAngle(a2)
	var cw float64
	if a2 >= a1 {
		cw = a2 - a1
	} else {
		cw = a2 + (2*math.Pi - a1)
	}
	ccw := 2*math.Pi - cw
	if cw <= ccw {
		return NormalizedAngle(a1 + cw/2)
	}
	return NormalizedAngle(a1 - ccw/2)
}

func averageAngle3(x1, y1, x2, y2, x3, y3 float64) float64 {
	return AverageAngle(LineAngle(x1, y1, x2, y2), LineAngle(x2, y2, x3, y3))
}

// circleCenter returns the circle through three points. ok is false for
// collinear points.
func circleCenter(x1, y1, x2, y2, x3, y3 float64) (cx, cy, r float64, ok bool) {
	d := 2 * (x1*(y2-y3) + x2*(y3-y1) + x3*(y1-y2))
	if DoubleNear(d, 0) {
		return 0, 0, 0, false
	}
	s1 := x1*x1 + y1*y1
	s2 := x2*x2 + y2*y2
	s3 := x3*x3 + y3*y3
	cx = (s1*(y2-y3) + s2*(y3-y1) + s3*(y1-y2)) / d
	cy = (s1*(x3-x2) + s2*(x1-x3) + s3*(x2-x1)) / d
	return cx, cy, math.Hypot(x1-cx, y1-cy), true
}

// arcSweep returns the radius and the swept angle of the arc that starts
// at p1, passes p2 and ends at p3, plus whether it turns counter-clockwise.
// A closed arc (p1 == p3) is a full circle with p2 diametrically opposite.
func arcSweep(x1, y1, x2, y2, x3, y3 float64) (r, sweep float64, ccw, ok bool) {
	if DoubleNear(x1, x3) && DoubleNear(y1, y3) {
		return math.Hypot(x2-x1, y2-y1) / 2, 2 * math.Pi, true, true
	}
	cx, cy, r, ok := circleCenter(x1, y1, x2, y2, x3, y3)
	if !ok {
		return 0, 0, false, false
	}
	ccw = (x2-x1)*(y3-y2)-(y2-y1)*(x3-x2) > 0
	a1 := math.Atan2(y1-cy, x1-cx)
	a3 := math.Atan2(y3-cy, x3-cx)
	if ccw {
		sweep = NormalizedAngle(a3 - a1)
	} else {
		sweep = NormalizedAngle(a1 - a3)
	}
	return r, sweep, ccw, true
}
