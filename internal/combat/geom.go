package combat

import "math"

// Vec2 is a point on the battlefield: X along the lane, Y is height.
type Vec2 struct{ X, Y float64 }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Len() float64    { return math.Hypot(a.X, a.Y) }
func (a Vec2) Norm() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

// StepToward moves a toward b by at most step and never overshoots.
func (a Vec2) StepToward(b Vec2, step float64) Vec2 {
	diff := b.Sub(a)
	d := diff.Len()
	if d <= step {
		return b
	}
	return a.Add(diff.Norm().Scale(step))
}

func laneDist(a, b float64) float64 { return math.Abs(a - b) }
