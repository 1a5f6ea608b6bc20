package geometry

// PointInPolygon reports whether p lies inside the closed polygon given by
// pts, using the even-odd crossing rule. The polygon does not need to
// repeat its first vertex.
func PointInPolygon(p Point2D, pts []Point2D) bool {
	inside := false
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + n - 1) % n
		if (pts[i].Y > p.Y) != (pts[j].Y > p.Y) &&
			p.X < (pts[j].X-pts[i].X)*(p.Y-pts[i].Y)/(pts[j].Y-pts[i].Y)+pts[i].X {
			inside = !inside
		}
	}
	return inside
}
