package turtle

import "math"

const hullEpsilon = 1e-9

// To find orientation of ordered triplet (p, q, r).
// The function returns following values
// 0 --> p, q and r are colinear
// 1 --> Clockwise
// 2 --> Counterclockwise
func orientation(p, q, r Point) int {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	if math.Abs(val) < hullEpsilon {
		return 0 // colinear
	}
	if val > 0 {
		return 1 // clockwise
	}
	return 2 // counterclock wise
}

func distSq(p, q Point) float64 {
	dx, dy := q.X-p.X, q.Y-p.Y
	return dx*dx + dy*dy
}

// onSegment reports whether q lies on the bounding box of segment pr.
func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// ConvexHull returns the corners of the convex hull of points, walking
// counterclockwise (in y-up terms) from the leftmost point. Colinear
// points on an edge are dropped. Fewer than three distinct points come
// back as they are, deduplicated.
func ConvexHull(points []Point) []Point {
	pts := make([]Point, 0, len(points))
	seen := make(map[Point]bool, len(points))
	for _, p := range points {
		if !seen[p] {
			seen[p] = true
			pts = append(pts, p)
		}
	}
	if len(pts) < 3 {
		return pts
	}

	// Gift wrapping, starting from the leftmost (then lowest) point.
	start := 0
	for i, p := range pts {
		if p.X < pts[start].X || (p.X == pts[start].X && p.Y < pts[start].Y) {
			start = i
		}
	}

	var hull []Point
	p := start
	for {
		hull = append(hull, pts[p])
		q := (p + 1) % len(pts)
		for i := range pts {
			switch orientation(pts[p], pts[i], pts[q]) {
			case 2:
				q = i
			case 0:
				// keep the farthest of colinear candidates
				if onSegment(pts[p], pts[q], pts[i]) && distSq(pts[p], pts[i]) > distSq(pts[p], pts[q]) {
					q = i
				}
			}
		}
		p = q
		if p == start || len(hull) > len(pts) {
			break
		}
	}
	return hull
}
