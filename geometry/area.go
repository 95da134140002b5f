package geometry

import (
	"math"
	"strings"

	i2stypes "github.com/jimwalker53/Image-to-SVG/type"
)

// PolygonArea 鞋带公式求面积（绝对值），少于 3 个点为 0
func PolygonArea(points []i2stypes.Point) float64 {
	if len(points) < 3 {
		return 0
	}
	var sum float64
	for i := range points {
		j := (i + 1) % len(points)
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return math.Abs(sum) / 2
}

// PathArea 外轮廓面积减去内孔面积
func PathArea(p i2stypes.Path) float64 {
	area := PolygonArea(p.Points)
	for _, h := range p.Holes {
		area -= PolygonArea(h)
	}
	return math.Max(area, 0)
}

// CountPoints 所有路径的点数之和
func CountPoints(paths []i2stypes.Path) int {
	n := 0
	for _, p := range paths {
		n += p.PointCount()
	}
	return n
}

// FormatPath 输出绝对坐标的 M/L/Z 命令串，内孔作为后续子路径追加
func FormatPath(p i2stypes.Path) string {
	var b strings.Builder
	writeRing(&b, p.Points, p.Closed)
	for _, h := range p.Holes {
		b.WriteByte(' ')
		writeRing(&b, h, true)
	}
	return b.String()
}

func writeRing(b *strings.Builder, pts []i2stypes.Point, closed bool) {
	for i, pt := range pts {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(formatNumber(pt.X))
		b.WriteByte(' ')
		b.WriteString(formatNumber(pt.Y))
	}
	if closed && len(pts) > 0 {
		b.WriteString(" Z")
	}
}
