package solid

// Rect returns a w x h rectangle centered on the origin.
func Rect(w, h float64) []Vec2 {
	x, y := w/2, h/2
	return []Vec2{{-x, -y}, {x, -y}, {x, y}, {-x, y}}
}

// ChamferedRect returns a w x h rectangle centered on the origin with its
// four corners cut at 45 degrees by c.
func ChamferedRect(w, h, c float64) []Vec2 {
	x, y := w/2, h/2
	c = min(c, x, y)
	return []Vec2{
		{-x + c, -y}, {x - c, -y}, {x, -y + c}, {x, y - c},
		{x - c, y}, {-x + c, y}, {-x, y - c}, {-x, -y + c},
	}
}

// FlaredTrapezoid returns an isosceles trapezoid whose narrow edge (width
// narrow) lies on y = 0 and whose wide edge (width wide) lies on y = length.
func FlaredTrapezoid(narrow, wide, length float64) []Vec2 {
	n, w := narrow/2, wide/2
	return []Vec2{{-n, 0}, {n, 0}, {w, length}, {-w, length}}
}

// RightTrapezoid returns a profile standing on y = 0 from x = 0 to
// x = length, hStart tall at x = 0 and hEnd tall at x = length.
func RightTrapezoid(length, hStart, hEnd float64) []Vec2 {
	return []Vec2{{0, 0}, {length, 0}, {length, hEnd}, {0, hStart}}
}

// Translate offsets every point of a profile.
func Translate(pts []Vec2, dx, dy float64) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[i] = Vec2{p.X + dx, p.Y + dy}
	}
	return out
}
