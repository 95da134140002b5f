package geometry

import (
	"math"

	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

// perpendicularDistance 点 p 到弦 ab 的距离；a==b 时退化为点距
func perpendicularDistance(p, a, b i2stypes.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx == 0 && dy == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / math.Hypot(dx, dy)
}

// Simplify Douglas-Peucker。端点总是保留；偏离弦不超过 tolerance 的内部点被丢弃。
func Simplify(points []i2stypes.Point, tolerance float64) []i2stypes.Point {
	n := len(points)
	if n <= 2 {
		return append([]i2stypes.Point(nil), points...)
	}

	keep := make([]bool, n)
	keep[0], keep[n-1] = true, true

	type span struct{ first, last int }
	stack := []span{{0, n - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.last-s.first < 2 {
			continue
		}

		maxDist := -1.0
		index := s.first
		for i := s.first + 1; i < s.last; i++ {
			d := perpendicularDistance(points[i], points[s.first], points[s.last])
			if d > maxDist {
				maxDist = d
				index = i
			}
		}
		if maxDist > tolerance {
			keep[index] = true
			stack = append(stack, span{s.first, index}, span{index, s.last})
		}
	}

	out := make([]i2stypes.Point, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

// closedToleranceRatio 闭合环的容差不超过其包围盒短边的这一比例
const closedToleranceRatio = 0.1

// SimplifyClosed 闭合环的简化。两个切分锚点取字典序最小的点和离它最远的点，
// 都是凸包顶点且与环的起点无关，所以同一个环从任意位置开始得到相同的结果
// （输出从字典序最小的点开始）。容差按环的尺寸封顶，小区域不会被压成一条线段。
func SimplifyClosed(points []i2stypes.Point, tolerance float64) []i2stypes.Point {
	n := len(points)
	if n <= 3 {
		return append([]i2stypes.Point(nil), points...)
	}

	start := 0
	for i := 1; i < n; i++ {
		if lessPoint(points[i], points[start]) {
			start = i
		}
	}
	ring := make([]i2stypes.Point, 0, n+1)
	ring = append(ring, points[start:]...)
	ring = append(ring, points[:start]...)

	far := 0
	var best float64
	for i := 1; i < n; i++ {
		if d := math.Hypot(ring[i].X-ring[0].X, ring[i].Y-ring[0].Y); d > best {
			best = d
			far = i
		}
	}
	if far == 0 {
		return []i2stypes.Point{ring[0]}
	}

	tolerance = math.Min(tolerance, closedToleranceRatio*shortSide(ring))
	ring = append(ring, ring[0])

	first := Simplify(ring[:far+1], tolerance)
	second := Simplify(ring[far:], tolerance)
	out := append(first, second[1:len(second)-1]...)
	if len(out) >= 3 {
		return out
	}
	return triangle(ring, far)
}

// triangle 两个锚点加上离弦最远的点；全部共线时只返回两个锚点
func triangle(ring []i2stypes.Point, far int) []i2stypes.Point {
	a, b := ring[0], ring[far]
	index := -1
	var best float64
	for i := 1; i < len(ring)-1; i++ {
		if i == far {
			continue
		}
		if d := perpendicularDistance(ring[i], a, b); d > best {
			best = d
			index = i
		}
	}
	switch {
	case index < 0:
		return []i2stypes.Point{a, b}
	case index < far:
		return []i2stypes.Point{a, ring[index], b}
	default:
		return []i2stypes.Point{a, b, ring[index]}
	}
}

func lessPoint(p, q i2stypes.Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

func shortSide(points []i2stypes.Point) float64 {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return math.Min(maxX-minX, maxY-minY)
}
